package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type FollowService struct{}

func NewFollowService() *FollowService {
	return &FollowService{}
}

// Follow создает подписку follower -> author. Повторная подписка - no-op:
// уникальный индекс пары остается страховкой на уровне БД.
// Подписка на себя не запрещена.
func (fs *FollowService) Follow(ctx context.Context, followerID, authorID int64) error {
	var authorCount int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Where("id = ?", authorID).Count(&authorCount).Error
	if err != nil {
		return fmt.Errorf("error checking author: %w", err)
	}
	if authorCount == 0 {
		return fmt.Errorf("author %d: %w", authorID, gorm.ErrRecordNotFound)
	}

	var existing models.Follow
	err = db.GetReadOnlyDB(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking follow edge: %w", err)
	}

	edge := &models.Follow{
		FollowerID: followerID,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(edge).Error; err != nil {
		return fmt.Errorf("failed to create follow edge: %w", err)
	}
	return nil
}

// Unfollow удаляет подписку. Отсутствующая подписка - no-op, не ошибка.
func (fs *FollowService) Unfollow(ctx context.Context, followerID, authorID int64) error {
	err := db.GetWriteDB(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return nil
}

func (fs *FollowService) IsFollowing(ctx context.Context, followerID, authorID int64) (bool, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return count > 0, nil
}

// FollowedAuthors возвращает авторов, на которых подписан follower
func (fs *FollowService) FollowedAuthors(ctx context.Context, followerID int64) ([]int64, error) {
	var authorIDs []int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("author_id ASC").
		Pluck("author_id", &authorIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get followed authors: %w", err)
	}
	return authorIDs, nil
}

// FollowerCount - сколько подписчиков у автора
func (fs *FollowService) FollowerCount(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// FollowingCount - на скольких авторов подписан пользователь
func (fs *FollowService) FollowingCount(ctx context.Context, followerID int64) (int64, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}
