package handlers

import (
	"errors"
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var groupService = services.NewGroupService()

// CreateGroup создает группу
func CreateGroup(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Slug        string `json:"slug" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group, err := groupService.CreateGroup(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// ListGroups возвращает все группы
func ListGroups(c *gin.Context) {
	groups, err := groupService.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// DeleteGroup удаляет группу; ее посты остаются, но теряют привязку
func DeleteGroup(c *gin.Context) {
	err := groupService.DeleteGroup(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}
