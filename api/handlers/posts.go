package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var postService = services.NewPostService()
var commentService = services.NewCommentService()

type postRequest struct {
	Text    string `json:"text" binding:"required"`
	GroupID *int64 `json:"group_id"`
}

// CreatePost создает пост от имени авторизованного пользователя
func CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := postService.CreatePost(c.Request.Context(), userID.(int64), req.Text, req.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post text must not be empty"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		}
		return
	}

	c.JSON(http.StatusCreated, post)
}

// EditPost меняет пост. Не автору - 403.
func EditPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := postService.EditPost(c.Request.Context(), userID.(int64), postID, req.Text, req.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit the post"})
		case errors.Is(err, services.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Post text must not be empty"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit post"})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPost - страница поста с комментариями
func GetPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}

	comments, err := commentService.GetComments(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments})
}

// UploadPostImage принимает multipart-форму с полем image и привязывает
// загруженную картинку к посту автора
func UploadPostImage(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	imagePath, err := services.SaveImage(
		c.Request.Context(),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media storage not available"})
		return
	}

	err = postService.AttachImage(c.Request.Context(), userID.(int64), postID, imagePath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can attach an image"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": imagePath})
}

// GetQueueStats возвращает длину очереди оповещений (админский эндпоинт)
func GetQueueStats(c *gin.Context) {
	if services.QueueServiceInstance == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Queue service not available"})
		return
	}

	queueLength, err := services.QueueServiceInstance.GetQueueStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queue_length": queueLength,
		"workers":      services.QUEUE_WORKER_COUNT,
	})
}
