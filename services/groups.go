package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type GroupService struct{}

func NewGroupService() *GroupService {
	return &GroupService{}
}

// CreateGroup создает группу с уникальным slug
func (gs *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*models.Group, error) {
	if title == "" || slug == "" {
		return nil, errors.New("group title and slug are required")
	}

	var existing int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Group{}).Where("slug = ?", slug).Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("error checking group slug: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("group with slug %q already exists", slug)
	}

	group := &models.Group{Title: title, Slug: slug, Description: description}
	if err := db.GetWriteDB(ctx).Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (gs *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := db.GetReadOnlyDB(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (gs *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := db.GetReadOnlyDB(ctx).Order("title ASC").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup удаляет группу, обнуляя ссылку у ее постов: посты переживают
// группу. Обнуление явное, в одной транзакции - на каскады БД не полагаемся.
func (gs *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	var group models.Group
	if err := db.GetWriteDB(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return err
	}

	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach posts from group: %w", err)
		}
		if err := tx.Delete(&group).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
}
