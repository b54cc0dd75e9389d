package handlers

import (
	"errors"
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Follow - подписка на автора по username. Повторная подписка - no-op.
func Follow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	author, err := userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	if err := followService.Follow(c.Request.Context(), userID.(int64), author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
		return
	}

	_ = services.SendWsNotify(author.ID, "info", c.GetString("username")+" подписался на вас")

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
}

// Unfollow - отписка от автора. Отсутствующая подписка - тоже успех.
func Unfollow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	author, err := userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	if err := followService.Unfollow(c.Request.Context(), userID.(int64), author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}
