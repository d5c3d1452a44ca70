package dashboard

import (
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
	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Stats)
		dashboard.GET("/videos", h.Videos)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch channel stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats}, "Channel stats fetched successfully")
}

func (h *Handler) Videos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, total, err := h.service.Videos(c.Request.Context(), c.GetInt64("user_id"), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch channel videos")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}, "Channel videos fetched successfully")
}
