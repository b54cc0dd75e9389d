package routes

import (
	"yatube/api/handlers"
	"yatube/api/middleware"

	"github.com/gin-gonic/gin"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	v1 := router.Group("/api/v1/")

	v1.POST("auth/register", handlers.Register)
	v1.POST("auth/login", handlers.Login)

	// Открытые ленты: авторизация опциональна (влияет только на флаг
	// подписки в профиле)
	open := v1.Group("")
	open.Use(middleware.OptionalAuth())
	{
		open.GET("feed", handlers.Index)
		open.GET("groups", handlers.ListGroups)
		open.GET("groups/:slug", handlers.GroupPosts)
		open.GET("profile/:username", handlers.Profile)
		open.GET("posts/:post_id", handlers.GetPost)
		open.GET("posts/:post_id/comments", handlers.ListComments)
	}

	// Все, что пишет или читает от имени пользователя
	authed := v1.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.POST("auth/logout", handlers.Logout)
		authed.GET("feed/follow", handlers.FollowIndex)
		authed.POST("posts", handlers.CreatePost)
		authed.POST("posts/:post_id/edit", handlers.EditPost)
		authed.POST("posts/:post_id/image", handlers.UploadPostImage)
		authed.POST("posts/:post_id/comments", handlers.AddComment)
		authed.POST("profile/:username/follow", handlers.Follow)
		authed.POST("profile/:username/unfollow", handlers.Unfollow)
		authed.POST("groups", handlers.CreateGroup)
		authed.POST("groups/:slug/delete", handlers.DeleteGroup)
		authed.GET("ws/feed", handlers.WSFeed)

		authed.POST("admin/cache/clear", handlers.ClearFeedCache)
		authed.GET("admin/queue/stats", handlers.GetQueueStats)
	}

	return v1
}
