package comment

import (
	"errors"
	"net/http"
	"strconv"

	"clipstream/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/videos/:id/comments", h.ListByVideo)
	protected.POST("/videos/:id/comments", h.Add)
	protected.PATCH("/comments/:id", h.Update)
	protected.DELETE("/comments/:id", h.Delete)
}

func (h *Handler) ListByVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	comments, total, err := h.service.ListByVideo(c.Request.Context(), videoID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, "Comments fetched successfully")
}

func (h *Handler) Add(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Comment content is required")
		return
	}

	created, err := h.service.Add(c.Request.Context(), videoID, c.GetInt64("user_id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrVideoNotFound):
			response.Error(c, http.StatusNotFound, "Video not found")
		case errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "Comment content is required")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to add comment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": created}, "Comment added successfully")
}

func (h *Handler) Update(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Comment content is required")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), commentID, c.GetInt64("user_id"), req.Content)
	if err != nil {
		h.writeCommentError(c, err, "Failed to update comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comment": updated}, "Comment updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), commentID, c.GetInt64("user_id")); err != nil {
		h.writeCommentError(c, err, "Failed to delete comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}

func (h *Handler) writeCommentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "You don't own this comment")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "Comment content is required")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
