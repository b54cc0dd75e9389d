package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// CommentView - комментарий с именем автора для отдачи наружу
type CommentView struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddComment создает комментарий к существующему посту.
// Авторизацию проверяет вызывающая сторона: сюда приходит только
// аутентифицированный authorID.
func (cs *CommentService) AddComment(ctx context.Context, authorID, postID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	var postCount int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&postCount).Error
	if err != nil {
		return nil, fmt.Errorf("error checking post: %w", err)
	}
	if postCount == 0 {
		return nil, fmt.Errorf("post %d: %w", postID, gorm.ErrRecordNotFound)
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetComments возвращает комментарии поста от старых к новым
func (cs *CommentService) GetComments(ctx context.Context, postID int64) ([]CommentView, error) {
	var comments []CommentView
	err := db.GetReadOnlyDB(ctx).
		Table("comments c").
		Select("c.id, c.post_id, c.author_id, u.username AS author_name, c.text, c.created_at").
		Joins("JOIN users u ON c.author_id = u.id").
		Where("c.post_id = ?", postID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if comments == nil {
		comments = []CommentView{}
	}
	return comments, nil
}
