package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveAllOrdering(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	author := createTestUser(t, "leo")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	old := createTestPost(t, author.ID, nil, "oldest", base)
	// Два поста с одинаковой меткой времени: при равенстве побеждает меньший id
	tieA := createTestPost(t, author.ID, nil, "tie a", base.Add(time.Hour))
	tieB := createTestPost(t, author.ID, nil, "tie b", base.Add(time.Hour))
	newest := createTestPost(t, author.ID, nil, "newest", base.Add(2*time.Hour))

	posts, err := feedService.Resolve(ctx, AllScope())
	require.NoError(t, err)
	require.Len(t, posts, 4)
	require.Equal(t, newest.ID, posts[0].ID)
	require.Equal(t, tieA.ID, posts[1].ID)
	require.Equal(t, tieB.ID, posts[2].ID)
	require.Equal(t, old.ID, posts[3].ID)

	// Повторный вызов дает тот же порядок
	again, err := feedService.Resolve(ctx, AllScope())
	require.NoError(t, err)
	require.Equal(t, posts, again)
}

func TestResolveAllJoinsDisplayFields(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	author := createTestUser(t, "anna")
	group := createTestGroup(t, "Cats", "cats")
	createTestPost(t, author.ID, &group.ID, "with group", time.Now())
	createTestPost(t, author.ID, nil, "without group", time.Now().Add(-time.Minute))

	posts, err := feedService.Resolve(ctx, AllScope())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "anna", posts[0].AuthorName)
	require.Equal(t, "Cats", posts[0].GroupTitle)
	require.Empty(t, posts[1].GroupTitle)
	require.Nil(t, posts[1].GroupID)
}

func TestResolveGroupIsolation(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	author := createTestUser(t, "mark")
	cats := createTestGroup(t, "Cats", "cats")
	dogs := createTestGroup(t, "Dogs", "dogs")

	inCats := createTestPost(t, author.ID, &cats.ID, "cat post", time.Now())
	createTestPost(t, author.ID, &dogs.ID, "dog post", time.Now())
	createTestPost(t, author.ID, nil, "no group", time.Now())

	posts, err := feedService.Resolve(ctx, GroupScope("cats"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, inCats.ID, posts[0].ID)
}

func TestResolveUnknownGroupAndAuthorAreEmpty(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	author := createTestUser(t, "zoe")
	createTestPost(t, author.ID, nil, "visible somewhere", time.Now())

	posts, err := feedService.Resolve(ctx, GroupScope("no-such-slug"))
	require.NoError(t, err)
	require.NotNil(t, posts)
	require.Len(t, posts, 0)

	posts, err = feedService.Resolve(ctx, AuthorScope("no-such-user"))
	require.NoError(t, err)
	require.NotNil(t, posts)
	require.Len(t, posts, 0)
}

func TestResolveAuthorScope(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	mine := createTestPost(t, alice.ID, nil, "by alice", time.Now())
	createTestPost(t, bob.ID, nil, "by bob", time.Now())

	posts, err := feedService.Resolve(ctx, AuthorScope("alice"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, mine.ID, posts[0].ID)
}

func TestResolveSubscriptionsExactness(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()
	followService := NewFollowService()

	viewer := createTestUser(t, "viewer")
	followed := createTestUser(t, "followed")
	stranger := createTestUser(t, "stranger")

	fromFollowed := createTestPost(t, followed.ID, nil, "from followed", time.Now())
	createTestPost(t, stranger.ID, nil, "from stranger", time.Now())
	createTestPost(t, viewer.ID, nil, "own post", time.Now())

	require.NoError(t, followService.Follow(ctx, viewer.ID, followed.ID))

	posts, err := feedService.Resolve(ctx, SubscriptionsScope(viewer.ID))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, fromFollowed.ID, posts[0].ID)
}

func TestResolveSubscriptionsEmptyWithoutFollows(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	feedService := NewFeedService()

	viewer := createTestUser(t, "loner")
	other := createTestUser(t, "other")
	createTestPost(t, other.ID, nil, "unseen", time.Now())

	posts, err := feedService.Resolve(ctx, SubscriptionsScope(viewer.ID))
	require.NoError(t, err)
	require.NotNil(t, posts)
	require.Len(t, posts, 0)
}

func TestResolveSubscriptionsAnonymousViewer(t *testing.T) {
	setupTestDB(t)

	_, err := NewFeedService().Resolve(context.Background(), SubscriptionsScope(0))
	require.ErrorIs(t, err, ErrInvalidScope)
}
