package like

import (
	"context"
	"net/http"
	"strconv"

	"clipstream/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type toggleFunc func(ctx context.Context, userID, targetID int64) (bool, error)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	likes := protected.Group("/likes")
	{
		likes.POST("/videos/:id/toggle", h.ToggleVideo)
		likes.POST("/comments/:id/toggle", h.ToggleComment)
		likes.POST("/tweets/:id/toggle", h.ToggleTweet)
		likes.GET("/videos", h.ListLikedVideos)
	}
}

func (h *Handler) ToggleVideo(c *gin.Context) {
	h.toggle(c, h.service.ToggleVideoLike, "Video")
}

func (h *Handler) ToggleComment(c *gin.Context) {
	h.toggle(c, h.service.ToggleCommentLike, "Comment")
}

func (h *Handler) ToggleTweet(c *gin.Context) {
	h.toggle(c, h.service.ToggleTweetLike, "Tweet")
}

func (h *Handler) toggle(c *gin.Context, fn toggleFunc, label string) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return
	}

	liked, err := fn(c.Request.Context(), c.GetInt64("user_id"), targetID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	message := label + " unliked"
	if liked {
		message = label + " liked"
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked}, message)
}

func (h *Handler) ListLikedVideos(c *gin.Context) {
	likes, err := h.service.ListLikedVideos(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch liked videos")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"liked_videos": likes}, "Fetched all liked videos")
}
