package middleware

import (
	"net/http"
	"strings"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

var userService = services.NewUserService()

func tokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthRequired проверяет Bearer-токен по базе и кладет user_id в контекст.
// Без валидного токена запрос обрывается с 401 - анонимный пользователь
// не должен дойти до лент подписок и операций записи.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		user, err := userService.UserByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}

// OptionalAuth устанавливает user_id, если валидный токен есть,
// и молча пропускает запрос дальше, если нет
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token != "" {
			if user, err := userService.UserByToken(c.Request.Context(), token); err == nil {
				c.Set("user_id", user.ID)
				c.Set("username", user.Username)
			}
		}
		c.Next()
	}
}
