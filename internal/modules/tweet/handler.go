package tweet

import (
	"errors"
	"net/http"
	"strconv"

	"clipstream/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type TweetRequest struct {
	Content string `json:"content" binding:"required,max=280"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	tweets := protected.Group("/tweets")
	{
		tweets.POST("", h.Create)
		tweets.GET("/users/:id", h.ListByUser)
		tweets.PATCH("/:id", h.Update)
		tweets.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Tweet content is required")
		return
	}

	t, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req.Content)
	if err != nil {
		h.writeTweetError(c, err, "Failed to create tweet")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tweet": t}, "Tweet created successfully")
}

func (h *Handler) ListByUser(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	tweets, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch tweets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tweets": tweets}, "Tweets fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tweet ID")
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Tweet content is required")
		return
	}

	t, err := h.service.Update(c.Request.Context(), tweetID, c.GetInt64("user_id"), req.Content)
	if err != nil {
		h.writeTweetError(c, err, "Failed to update tweet")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tweet": t}, "Tweet updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	tweetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tweet ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tweetID, c.GetInt64("user_id")); err != nil {
		h.writeTweetError(c, err, "Failed to delete tweet")
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}

func (h *Handler) writeTweetError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTweetNotFound):
		response.Error(c, http.StatusNotFound, "Tweet not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "You don't own this tweet")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "Tweet content is required")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
