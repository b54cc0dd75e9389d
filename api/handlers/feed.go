package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"yatube/api/middleware"
	"yatube/config"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "yatube"

// IndexFeedPath - единственный путь, который кеширует FeedCache
const IndexFeedPath = "/api/v1/feed"

var feedService = services.NewFeedService()
var followService = services.NewFollowService()

// feedCache внедряется при старте процесса (SetFeedCache);
// nil означает прямой рендер без кеширования
var feedCache *services.FeedCache

func SetFeedCache(fc *services.FeedCache) {
	feedCache = fc
}

func pageSize() int {
	if config.AppConfig != nil {
		return config.AppConfig.PageSize()
	}
	return services.DefaultPageSize
}

func renderPage(c *gin.Context, scope services.Scope) ([]byte, error) {
	posts, err := feedService.Resolve(c.Request.Context(), scope)
	if err != nil {
		return nil, err
	}
	page := services.Paginate(posts, services.ParsePageNumber(c.Query("page")), pageSize())
	return json.Marshal(page)
}

// Index - главная лента (все посты). Вход без явного номера страницы
// отдается через кеш отрендеренных байтов: в пределах окна все зрители
// получают один и тот же ответ, даже если посты уже изменились.
func Index(c *gin.Context) {
	start := time.Now()

	render := func() ([]byte, error) {
		return renderPage(c, services.AllScope())
	}

	if c.Query("page") == "" && feedCache != nil {
		data, hit, err := feedCache.Fetch(c.Request.Context(), c.Request.URL.RequestURI(), render)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feed"})
			return
		}
		cacheStatus := "miss"
		if hit {
			cacheStatus = "hit"
		}
		middleware.RecordFeedRequest(string(services.ScopeAll), cacheStatus, serviceName, time.Since(start))
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	data, err := render()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feed"})
		return
	}
	middleware.RecordFeedRequest(string(services.ScopeAll), "bypass", serviceName, time.Since(start))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// GroupPosts - лента группы по slug. Неизвестный slug - 404.
func GroupPosts(c *gin.Context) {
	start := time.Now()
	slug := c.Param("slug")

	group, err := groupService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get group"})
		return
	}

	posts, err := feedService.Resolve(c.Request.Context(), services.GroupScope(slug))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get group posts"})
		return
	}
	page := services.Paginate(posts, services.ParsePageNumber(c.Query("page")), pageSize())

	middleware.RecordFeedRequest(string(services.ScopeGroup), "bypass", serviceName, time.Since(start))
	c.JSON(http.StatusOK, gin.H{"group": group, "page": page})
}

// Profile - страница автора: его лента и счетчики подписок
func Profile(c *gin.Context) {
	start := time.Now()
	username := c.Param("username")

	user, err := userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	posts, err := feedService.Resolve(c.Request.Context(), services.AuthorScope(username))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get author posts"})
		return
	}
	page := services.Paginate(posts, services.ParsePageNumber(c.Query("page")), pageSize())

	followerCount, _ := followService.FollowerCount(c.Request.Context(), user.ID)
	followingCount, _ := followService.FollowingCount(c.Request.Context(), user.ID)

	following := false
	if viewerID := c.GetInt64("user_id"); viewerID != 0 {
		following, _ = followService.IsFollowing(c.Request.Context(), viewerID, user.ID)
	}

	middleware.RecordFeedRequest(string(services.ScopeAuthor), "bypass", serviceName, time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"author": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
		"page":            page,
		"posts_count":     len(posts),
		"followers":       followerCount,
		"following_count": followingCount,
		"following":       following,
	})
}

// FollowIndex - лента подписок. Только для авторизованных:
// анонимный зритель отсекается до вызова резолвера.
func FollowIndex(c *gin.Context) {
	start := time.Now()
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	posts, err := feedService.Resolve(c.Request.Context(), services.SubscriptionsScope(userID.(int64)))
	if err != nil {
		if errors.Is(err, services.ErrInvalidScope) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscription feed"})
		return
	}
	page := services.Paginate(posts, services.ParsePageNumber(c.Query("page")), pageSize())

	middleware.RecordFeedRequest(string(services.ScopeSubscriptions), "bypass", serviceName, time.Since(start))
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// ClearFeedCache сбрасывает кеш главной ленты (админский эндпоинт)
func ClearFeedCache(c *gin.Context) {
	if feedCache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed cache not available"})
		return
	}
	if err := feedCache.Clear(c.Request.Context(), IndexFeedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}
