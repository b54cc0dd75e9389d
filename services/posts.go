package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

var (
	// ErrEmptyText - текст поста или комментария пуст
	ErrEmptyText = errors.New("text must not be empty")
	// ErrNotAuthor - редактировать пост может только его автор
	ErrNotAuthor = errors.New("only the author can edit the post")
)

type PostService struct{}

func NewPostService() *PostService {
	return &PostService{}
}

// CreatePost сохраняет пост и ставит задачу уведомления подписчиков.
// Кеш главной ленты НЕ инвалидируется: его устаревание ограничено окном.
func (ps *PostService) CreatePost(ctx context.Context, authorID int64, text string, groupID *int64) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if groupID != nil {
		var groupCount int64
		err := db.GetReadOnlyDB(ctx).Model(&models.Group{}).Where("id = ?", *groupID).Count(&groupCount).Error
		if err != nil {
			return nil, fmt.Errorf("error checking group: %w", err)
		}
		if groupCount == 0 {
			return nil, fmt.Errorf("group %d: %w", *groupID, gorm.ErrRecordNotFound)
		}
	}

	post := &models.Post{
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if QueueServiceInstance != nil && RedisClient != nil {
		go QueueServiceInstance.EnqueueFollowerNotify(context.Background(), *post)
	} else {
		// Fallback - уведомляем подписчиков синхронно, если очередь не инициализирована
		go NotifyFollowers(context.Background(), post)
	}

	return post, nil
}

// EditPost меняет текст и группу поста. Разрешено только автору.
func (ps *PostService) EditPost(ctx context.Context, editorID, postID int64, text string, groupID *int64) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	var post models.Post
	if err := db.GetWriteDB(ctx).First(&post, postID).Error; err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}
	if post.AuthorID != editorID {
		return nil, ErrNotAuthor
	}

	post.Text = text
	post.GroupID = groupID
	post.UpdatedAt = time.Now()
	if err := db.GetWriteDB(ctx).Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return &post, nil
}

// AttachImage записывает путь загруженной картинки на пост автора
func (ps *PostService) AttachImage(ctx context.Context, editorID, postID int64, imagePath string) error {
	var post models.Post
	if err := db.GetWriteDB(ctx).First(&post, postID).Error; err != nil {
		return fmt.Errorf("post %d: %w", postID, err)
	}
	if post.AuthorID != editorID {
		return ErrNotAuthor
	}
	return db.GetWriteDB(ctx).Model(&post).
		Updates(map[string]interface{}{"image": imagePath, "updated_at": time.Now()}).Error
}

// GetPost возвращает пост с данными автора и группы
func (ps *PostService) GetPost(ctx context.Context, postID int64) (*models.FeedPost, error) {
	var feedPosts []models.FeedPost
	err := db.GetReadOnlyDB(ctx).
		Table("posts p").
		Select("p.id, p.author_id, u.username AS author_name, p.group_id, COALESCE(g.title, '') AS group_title, p.text, p.image, p.created_at").
		Joins("JOIN users u ON p.author_id = u.id").
		Joins("LEFT JOIN groups g ON p.group_id = g.id").
		Where("p.id = ?", postID).
		Scan(&feedPosts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if len(feedPosts) == 0 {
		return nil, fmt.Errorf("post %d: %w", postID, gorm.ErrRecordNotFound)
	}
	return &feedPosts[0], nil
}
