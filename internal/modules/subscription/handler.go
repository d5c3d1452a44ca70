package subscription

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
	subs := protected.Group("/subscriptions")
	{
		subs.POST("/channels/:id/toggle", h.Toggle)
		subs.GET("/channels/:id/subscribers", h.ListSubscribers)
		subs.GET("/channels", h.ListSubscribedChannels)
	}
}

func (h *Handler) Toggle(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid channel ID")
		return
	}

	subscribed, err := h.service.Toggle(c.Request.Context(), c.GetInt64("user_id"), channelID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			response.Error(c, http.StatusBadRequest, "You cannot subscribe to your own channel")
		case errors.Is(err, ErrChannelNotFound):
			response.Error(c, http.StatusNotFound, "Channel not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to toggle subscription")
		}
		return
	}

	message := "Unsubscribed from channel"
	if subscribed {
		message = "Subscribed to channel"
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *Handler) ListSubscribers(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid channel ID")
		return
	}

	ids, err := h.service.ListSubscribers(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch subscribers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscriber_ids": ids}, "Subscribers fetched successfully")
}

func (h *Handler) ListSubscribedChannels(c *gin.Context) {
	ids, err := h.service.ListSubscribedChannels(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch subscribed channels")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"channel_ids": ids}, "Subscribed channels fetched successfully")
}
