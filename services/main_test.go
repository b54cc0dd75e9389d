package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"yatube/db"
	"yatube/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// setupTestDB поднимает SQLite в памяти и подменяет глобальный ORM.
// Уникальный DSN на тест: cache=shared держит одну базу на все соединения пула.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:yatube_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	db.ORM = database
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Password:  "unused",
	}
	require.NoError(t, db.GetWriteDB(context.Background()).Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: gofakeit.Sentence(5)}
	require.NoError(t, db.GetWriteDB(context.Background()).Create(group).Error)
	return group
}

// createTestPost пишет пост напрямую, минуя сервис: тестам ленты нужны
// управляемые метки времени и никаких фоновых оповещений
func createTestPost(t *testing.T, authorID int64, groupID *int64, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.GetWriteDB(context.Background()).Create(post).Error)
	return post
}
