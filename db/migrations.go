package db

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsureFeedIndexes создает индексы, по которым строится лента.
// Сортировка ленты всегда created_at DESC, id ASC.
func EnsureFeedIndexes(database *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_posts_feed_order",
			sql:  "CREATE INDEX IF NOT EXISTS idx_posts_feed_order ON posts (created_at DESC, id ASC)",
		},
		{
			name: "idx_posts_author_created",
			sql:  "CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts (author_id, created_at DESC)",
		},
		{
			name: "idx_posts_group_created",
			sql:  "CREATE INDEX IF NOT EXISTS idx_posts_group_created ON posts (group_id, created_at DESC)",
		},
		{
			name: "idx_comments_post_created",
			sql:  "CREATE INDEX IF NOT EXISTS idx_comments_post_created ON comments (post_id, created_at)",
		},
	}

	for _, idx := range indexes {
		if err := database.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}
