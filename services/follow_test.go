package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFollowUnfollowSetAlgebra(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()

	viewer := createTestUser(t, "reader")
	a := createTestUser(t, "author_a")
	b := createTestUser(t, "author_b")

	require.NoError(t, followService.Follow(ctx, viewer.ID, a.ID))
	require.NoError(t, followService.Follow(ctx, viewer.ID, b.ID))

	authors, err := followService.FollowedAuthors(ctx, viewer.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID}, authors)

	require.NoError(t, followService.Unfollow(ctx, viewer.ID, a.ID))

	authors, err = followService.FollowedAuthors(ctx, viewer.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, authors)
}

func TestFollowIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()

	viewer := createTestUser(t, "reader")
	author := createTestUser(t, "writer")

	require.NoError(t, followService.Follow(ctx, viewer.ID, author.ID))
	require.NoError(t, followService.Follow(ctx, viewer.ID, author.ID))

	count, err := followService.FollowingCount(ctx, viewer.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestUnfollowMissingEdgeIsNoop(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()

	viewer := createTestUser(t, "reader")
	author := createTestUser(t, "writer")

	require.NoError(t, followService.Unfollow(ctx, viewer.ID, author.ID))
}

func TestFollowUnknownAuthor(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()

	viewer := createTestUser(t, "reader")
	err := followService.Follow(ctx, viewer.ID, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Подписка на себя не запрещена: собственные посты появляются в ленте
// подписок только после self-follow
func TestSelfFollowShowsOwnPosts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()
	feedService := NewFeedService()

	user := createTestUser(t, "narcissus")
	own := createTestPost(t, user.ID, nil, "my own post", time.Now())

	posts, err := feedService.Resolve(ctx, SubscriptionsScope(user.ID))
	require.NoError(t, err)
	require.Len(t, posts, 0)

	require.NoError(t, followService.Follow(ctx, user.ID, user.ID))

	posts, err = feedService.Resolve(ctx, SubscriptionsScope(user.ID))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, own.ID, posts[0].ID)
}

func TestFollowCounts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	followService := NewFollowService()

	author := createTestUser(t, "star")
	fan1 := createTestUser(t, "fan1")
	fan2 := createTestUser(t, "fan2")

	require.NoError(t, followService.Follow(ctx, fan1.ID, author.ID))
	require.NoError(t, followService.Follow(ctx, fan2.ID, author.ID))

	followers, err := followService.FollowerCount(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), followers)

	following, err := followService.FollowingCount(ctx, fan1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), following)

	ok, err := followService.IsFollowing(ctx, fan1.ID, author.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = followService.IsFollowing(ctx, author.ID, fan1.ID)
	require.NoError(t, err)
	require.False(t, ok)
}
