package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePost(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	postService := NewPostService()

	author := createTestUser(t, "writer")
	group := createTestGroup(t, "Tech", "tech")

	post, err := postService.CreatePost(ctx, author.ID, "hello world", &group.ID)
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	require.Equal(t, author.ID, post.AuthorID)
	require.Equal(t, group.ID, *post.GroupID)
}

func TestCreatePostEmptyText(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "writer")

	_, err := NewPostService().CreatePost(context.Background(), author.ID, "   \n\t ", nil)
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestCreatePostUnknownGroup(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "writer")

	missing := int64(404)
	_, err := NewPostService().CreatePost(context.Background(), author.ID, "text", &missing)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEditPostAuthorOnly(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	postService := NewPostService()

	author := createTestUser(t, "writer")
	intruder := createTestUser(t, "intruder")
	post := createTestPost(t, author.ID, nil, "original", time.Now())

	_, err := postService.EditPost(ctx, intruder.ID, post.ID, "hijacked", nil)
	require.ErrorIs(t, err, ErrNotAuthor)

	edited, err := postService.EditPost(ctx, author.ID, post.ID, "updated", nil)
	require.NoError(t, err)
	require.Equal(t, "updated", edited.Text)
}

func TestEditMissingPost(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "writer")

	_, err := NewPostService().EditPost(context.Background(), author.ID, 12345, "text", nil)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttachImage(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	postService := NewPostService()

	author := createTestUser(t, "writer")
	other := createTestUser(t, "other")
	post := createTestPost(t, author.ID, nil, "with image", time.Now())

	require.ErrorIs(t, postService.AttachImage(ctx, other.ID, post.ID, "posts/x.png"), ErrNotAuthor)
	require.NoError(t, postService.AttachImage(ctx, author.ID, post.ID, "posts/x.png"))

	got, err := postService.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "posts/x.png", got.Image)
}

func TestGetPostJoinedFields(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	postService := NewPostService()

	author := createTestUser(t, "writer")
	group := createTestGroup(t, "Tech", "tech")
	post := createTestPost(t, author.ID, &group.ID, "joined", time.Now())

	got, err := postService.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "writer", got.AuthorName)
	require.Equal(t, "Tech", got.GroupTitle)

	_, err = postService.GetPost(ctx, 99999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
