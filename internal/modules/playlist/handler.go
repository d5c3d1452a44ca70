package playlist

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
	playlists := protected.Group("/playlists")
	{
		playlists.POST("", h.Create)
		playlists.GET("", h.ListMine)
		playlists.GET("/:id", h.Get)
		playlists.PATCH("/:id", h.Update)
		playlists.DELETE("/:id", h.Delete)
		playlists.POST("/:id/videos/:videoId", h.AddVideo)
		playlists.DELETE("/:id/videos/:videoId", h.RemoveVideo)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Playlist name is required")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req.Name, req.Description)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create playlist")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"playlist": p}, "Playlist created successfully")
}

func (h *Handler) ListMine(c *gin.Context) {
	playlists, err := h.service.ListByOwner(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch playlists")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"playlists": playlists}, "Playlists fetched successfully")
}

func (h *Handler) Get(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid playlist ID")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), playlistID)
	if err != nil {
		h.writePlaylistError(c, err, "Failed to fetch playlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"playlist": detail}, "Playlist fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid playlist ID")
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	p, err := h.service.Update(c.Request.Context(), playlistID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writePlaylistError(c, err, "Failed to update playlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"playlist": p}, "Playlist updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid playlist ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), playlistID, c.GetInt64("user_id")); err != nil {
		h.writePlaylistError(c, err, "Failed to delete playlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

func (h *Handler) AddVideo(c *gin.Context) {
	playlistID, videoID, ok := h.membershipIDs(c)
	if !ok {
		return
	}

	if err := h.service.AddVideo(c.Request.Context(), playlistID, videoID, c.GetInt64("user_id")); err != nil {
		h.writePlaylistError(c, err, "Failed to add video to playlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Video added to playlist")
}

func (h *Handler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, ok := h.membershipIDs(c)
	if !ok {
		return
	}

	if err := h.service.RemoveVideo(c.Request.Context(), playlistID, videoID, c.GetInt64("user_id")); err != nil {
		h.writePlaylistError(c, err, "Failed to remove video from playlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Video removed from playlist")
}

func (h *Handler) membershipIDs(c *gin.Context) (playlistID, videoID int64, ok bool) {
	playlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid playlist ID")
		return 0, 0, false
	}
	videoID, err = strconv.ParseInt(c.Param("videoId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid video ID")
		return 0, 0, false
	}
	return playlistID, videoID, true
}

func (h *Handler) writePlaylistError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPlaylistNotFound):
		response.Error(c, http.StatusNotFound, "Playlist not found")
	case errors.Is(err, ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "Video not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "You don't own this playlist")
	case errors.Is(err, ErrAlreadyInList):
		response.Error(c, http.StatusConflict, "Video already in playlist")
	case errors.Is(err, ErrNotInList):
		response.Error(c, http.StatusNotFound, "Video not in playlist")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
