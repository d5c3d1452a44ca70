package video

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"clipstream/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for videos
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	videos := protected.Group("/videos")
	{
		videos.GET("", h.List)
		videos.POST("", h.Publish)
		videos.GET("/:id", h.GetByID)
		videos.PATCH("/:id", h.Update)
		videos.PATCH("/:id/thumbnail", h.UpdateThumbnail)
		videos.PATCH("/:id/toggle-publish", h.TogglePublish)
		videos.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ownerID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)

	videos, total, err := h.service.List(c.Request.Context(), ListRequest{
		OwnerID:       ownerID,
		Query:         c.Query("query"),
		SortBy:        c.DefaultQuery("sort_by", "created_at"),
		SortAscending: c.Query("sort_type") == "asc",
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}
	if len(videos) == 0 {
		response.Error(c, http.StatusNotFound, "No videos found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}, "Videos fetched successfully")
}

// Publish accepts a multipart upload with "video" and "thumbnail" files
// plus title/description form fields.
func (h *Handler) Publish(c *gin.Context) {
	userID := c.GetInt64("user_id")

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" || description == "" {
		response.Error(c, http.StatusBadRequest, "Title and description are required")
		return
	}

	videoHeader, err := c.FormFile("video")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Video file is required")
		return
	}
	thumbHeader, err := c.FormFile("thumbnail")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Thumbnail file is required")
		return
	}

	videoFile, err := videoHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read video file")
		return
	}
	defer videoFile.Close()

	thumbFile, err := thumbHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read thumbnail file")
		return
	}
	defer thumbFile.Close()

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	v, err := h.service.Publish(c.Request.Context(), userID,
		PublishRequest{Title: title, Description: description, Duration: duration},
		Upload{Filename: videoHeader.Filename, ContentType: videoHeader.Header.Get("Content-Type"), Body: videoFile},
		Upload{Filename: thumbHeader.Filename, ContentType: thumbHeader.Header.Get("Content-Type"), Body: thumbFile},
	)
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			response.Error(c, http.StatusBadRequest, "Title and description are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to publish video")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"video": v}, "Video published successfully")
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.Error(c, http.StatusNotFound, "Video not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch video")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": v}, "Video fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeVideoError(c, err, "Failed to update video")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": v}, "Video updated successfully")
}

func (h *Handler) UpdateThumbnail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	thumbHeader, err := c.FormFile("thumbnail")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Thumbnail file is required")
		return
	}
	thumbFile, err := thumbHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read thumbnail file")
		return
	}
	defer thumbFile.Close()

	v, err := h.service.UpdateThumbnail(c.Request.Context(), id, c.GetInt64("user_id"),
		Upload{Filename: thumbHeader.Filename, ContentType: thumbHeader.Header.Get("Content-Type"), Body: thumbFile})
	if err != nil {
		h.writeVideoError(c, err, "Failed to update thumbnail")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": v}, "Thumbnail updated successfully")
}

func (h *Handler) TogglePublish(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	v, err := h.service.TogglePublish(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeVideoError(c, err, "Failed to toggle publish status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"video": v}, "Publish status toggled successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return
	}

	report, err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeVideoError(c, err, "Failed to delete video")
		return
	}

	// The video itself is gone even when cleanup steps failed; the
	// message reflects partial cascade completion instead of rolling
	// anything back.
	msg := "Video deleted successfully"
	if failed := report.Failed(); len(failed) > 0 {
		msg = fmt.Sprintf("Video deleted; cleanup incomplete for: %v", failed)
	}
	response.Success(c, http.StatusOK, gin.H{}, msg)
}

func (h *Handler) writeVideoError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "Video not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "You don't own this video")
	case errors.Is(err, ErrMissingInput):
		response.Error(c, http.StatusBadRequest, "Title or description is required")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
