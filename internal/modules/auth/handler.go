package auth

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"clipstream/internal/pkg/mediastore"
	"clipstream/internal/pkg/response"
	"clipstream/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// CookieConfig carries the process-wide cookie policy; both session
// cookies are HttpOnly and honor the configured Secure/SameSite flags.
type CookieConfig struct {
	Secure     bool
	SameSite   string
	Path       string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	media   MediaUploader
	cookies CookieConfig
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service, media MediaUploader, cookies CookieConfig) *Handler {
	return &Handler{
		service: service,
		media:   media,
		cookies: cookies,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed")
		return
	}

	// Multipart registrations may attach profile images.
	if url, ok := h.uploadFormImage(c, "avatar"); ok {
		req.AvatarURL = url
	}
	if url, ok := h.uploadFormImage(c, "cover_image"); ok {
		req.CoverImageURL = url
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			response.Error(c, http.StatusConflict, "Username or email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user}, "User registered successfully")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User does not exist")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Username or password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	h.setAuthCookies(c, result.Tokens)
	response.Success(c, http.StatusOK, gin.H{
		"user":   result.User,
		"tokens": result.Tokens,
	}, "Logged in successfully")
}

// Refresh rotates the session. The token is taken from the refresh
// cookie, falling back to the request body for non-browser clients.
func (h *Handler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(refreshCookie)
	if presented == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.service.Refresh(c.Request.Context(), presented)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingRefreshToken),
			errors.Is(err, ErrInvalidRefreshToken),
			errors.Is(err, ErrRefreshTokenMismatch):
			response.Error(c, http.StatusUnauthorized, "Refresh token is invalid or expired")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to refresh session")
		}
		return
	}

	h.setAuthCookies(c, *pair)
	response.Success(c, http.StatusOK, gin.H{"tokens": pair}, "Session refreshed successfully")
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{}, "Logged out successfully")
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user}, "Current user fetched successfully")
}

// uploadFormImage stores an optional multipart image and returns its
// public URL. Missing file or missing uploader is not an error.
func (h *Handler) uploadFormImage(c *gin.Context, field string) (string, bool) {
	if h.media == nil {
		return "", false
	}
	header, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	url, err := h.storeImage(c, field, header)
	if err != nil {
		return "", false
	}
	return url, true
}

func (h *Handler) storeImage(c *gin.Context, field string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := mediastore.ObjectKey(field+"s", header.Filename)
	return h.media.Upload(c.Request.Context(), key, header.Header.Get("Content-Type"), file)
}

func (h *Handler) setAuthCookies(c *gin.Context, pair TokenPair) {
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	c.SetCookie(accessCookie, pair.AccessToken, int(h.cookies.AccessTTL.Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	c.SetCookie(accessCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(refreshCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
