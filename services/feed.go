package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/db"
	"yatube/models"
)

// ErrInvalidScope возвращается, когда лента подписок запрошена без авторизации
var ErrInvalidScope = errors.New("subscriptions scope requires an authenticated viewer")

type ScopeKind string

const (
	ScopeAll           ScopeKind = "all"
	ScopeGroup         ScopeKind = "group"
	ScopeAuthor        ScopeKind = "author"
	ScopeSubscriptions ScopeKind = "subscriptions"
)

// Scope - фильтр видимости постов для конкретного представления ленты
type Scope struct {
	Kind      ScopeKind
	GroupSlug string
	Username  string
	ViewerID  int64
}

func AllScope() Scope {
	return Scope{Kind: ScopeAll}
}

func GroupScope(slug string) Scope {
	return Scope{Kind: ScopeGroup, GroupSlug: slug}
}

func AuthorScope(username string) Scope {
	return Scope{Kind: ScopeAuthor, Username: username}
}

func SubscriptionsScope(viewerID int64) Scope {
	return Scope{Kind: ScopeSubscriptions, ViewerID: viewerID}
}

type FeedService struct{}

func NewFeedService() *FeedService {
	return &FeedService{}
}

// Resolve возвращает упорядоченную последовательность постов, видимых в scope.
// Сортировка: created_at DESC, при равных метках id ASC - детерминирована
// между повторными вызовами. Неизвестный slug или username дают пустой
// результат; "не найдено" решает вызывающая сторона.
func (fs *FeedService) Resolve(ctx context.Context, scope Scope) ([]models.FeedPost, error) {
	query := db.GetReadOnlyDB(ctx).
		Table("posts p").
		Select("p.id, p.author_id, u.username AS author_name, p.group_id, COALESCE(g.title, '') AS group_title, p.text, p.image, p.created_at").
		Joins("JOIN users u ON p.author_id = u.id").
		Joins("LEFT JOIN groups g ON p.group_id = g.id").
		Order("p.created_at DESC, p.id ASC")

	switch scope.Kind {
	case ScopeAll:
		// без фильтра

	case ScopeGroup:
		var groupIDs []int64
		err := db.GetReadOnlyDB(ctx).Model(&models.Group{}).
			Where("slug = ?", scope.GroupSlug).
			Limit(1).
			Pluck("id", &groupIDs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group slug: %w", err)
		}
		if len(groupIDs) == 0 {
			return []models.FeedPost{}, nil
		}
		query = query.Where("p.group_id = ?", groupIDs[0])

	case ScopeAuthor:
		var authorIDs []int64
		err := db.GetReadOnlyDB(ctx).Model(&models.User{}).
			Where("username = ?", scope.Username).
			Limit(1).
			Pluck("id", &authorIDs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author username: %w", err)
		}
		if len(authorIDs) == 0 {
			return []models.FeedPost{}, nil
		}
		query = query.Where("p.author_id = ?", authorIDs[0])

	case ScopeSubscriptions:
		if scope.ViewerID == 0 {
			return nil, ErrInvalidScope
		}
		var authorIDs []int64
		err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
			Where("follower_id = ?", scope.ViewerID).
			Pluck("author_id", &authorIDs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get followed authors: %w", err)
		}
		if len(authorIDs) == 0 {
			return []models.FeedPost{}, nil
		}
		query = query.Where("p.author_id IN ?", authorIDs)

	default:
		return nil, fmt.Errorf("unknown feed scope: %q", scope.Kind)
	}

	var feedPosts []models.FeedPost
	if err := query.Scan(&feedPosts).Error; err != nil {
		return nil, fmt.Errorf("failed to get feed posts: %w", err)
	}
	if feedPosts == nil {
		feedPosts = []models.FeedPost{}
	}
	return feedPosts, nil
}
