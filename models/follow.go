package models

import "time"

// Follow - направленная подписка: лента подписчика включает посты автора.
// Пара (follower_id, author_id) уникальна. Подписка на себя не запрещена.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"index;uniqueIndex:idx_follow_pair" json:"follower_id"`
	AuthorID   int64     `gorm:"index;uniqueIndex:idx_follow_pair" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
