package models

// Group - сообщество, к которому можно привязать пост.
// Slug - неизменяемый внешний ключ для URL.
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"size:200" json:"title"`
	Slug        string `gorm:"size:200;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (Group) TableName() string {
	return "groups"
}
