package models

import (
	"time"
	"unicode/utf8"
)

// PreviewLength - количество символов текста в кратком представлении поста
const PreviewLength = 15

// Post - запись автора, опционально привязанная к группе.
// Удаление группы обнуляет group_id, сам пост остается.
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  int64     `gorm:"index;not null" json:"author_id"`
	GroupID   *int64    `gorm:"index" json:"group_id,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// Preview возвращает первые PreviewLength символов текста
func (p *Post) Preview() string {
	if utf8.RuneCountInString(p.Text) <= PreviewLength {
		return p.Text
	}
	return string([]rune(p.Text)[:PreviewLength])
}

// FeedPost - пост в ленте с данными автора и группы (явный join, без lazy loading)
type FeedPost struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	GroupID    *int64    `json:"group_id,omitempty"`
	GroupTitle string    `json:"group_title,omitempty"`
	Text       string    `json:"text"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Page - страница ленты с метаданными пагинации
type Page struct {
	Posts      []FeedPost `json:"posts"`
	PageNumber int        `json:"page_number"`
	TotalPages int        `json:"total_pages"`
	HasNext    bool       `json:"has_next"`
	HasPrev    bool       `json:"has_prev"`
}
