package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clipstream/internal/database"
	"clipstream/internal/domain"
	"clipstream/internal/middleware"
	"clipstream/internal/modules/auth"
	"clipstream/internal/modules/comment"
	"clipstream/internal/modules/dashboard"
	"clipstream/internal/modules/like"
	"clipstream/internal/modules/playlist"
	"clipstream/internal/modules/subscription"
	"clipstream/internal/modules/tweet"
	"clipstream/internal/modules/video"
	"clipstream/internal/pkg/token"
	"clipstream/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *token.Service
	media  *fakeMediaStore
}

type TestResponse struct {
	StatusCode int                    `json:"statusCode"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Message    string                 `json:"message"`
	Success    bool                   `json:"success"`
}

// fakeMediaStore keeps "uploaded" keys in memory so tests can assert
// the deletion cascade reached the media layer.
type fakeMediaStore struct {
	deleted []string
}

func (f *fakeMediaStore) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	return "https://media.test/" + key, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate schema")

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	tokens := token.New("test-access-secret-32-characters", "test-refresh-secret-32-character", 15*time.Minute, 240*time.Hour)
	media := &fakeMediaStore{}

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, media, auth.CookieConfig{
		SameSite:   "Lax",
		Path:       "/",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 240 * time.Hour,
	})

	videoService := video.NewService(videoRepo, commentRepo, likeRepo, playlistRepo, media)
	videoHandler := video.NewHandler(videoService)

	commentService := comment.NewService(commentRepo, videoRepo, nil)
	commentHandler := comment.NewHandler(commentService)

	likeService := like.NewService(likeRepo)
	likeHandler := like.NewHandler(likeService)

	playlistService := playlist.NewService(playlistRepo, videoRepo)
	playlistHandler := playlist.NewHandler(playlistService)

	subscriptionService := subscription.NewService(subscriptionRepo, userRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	tweetService := tweet.NewService(tweetRepo)
	tweetHandler := tweet.NewHandler(tweetService)

	dashboardService := dashboard.NewService(videoRepo, likeRepo, subscriptionRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(tokens, userRepo))
	{
		authHandler.RegisterProtectedRoutes(protected)
		videoHandler.RegisterRoutes(protected)
		commentHandler.RegisterRoutes(protected)
		likeHandler.RegisterRoutes(protected)
		playlistHandler.RegisterRoutes(protected)
		subscriptionHandler.RegisterRoutes(protected)
		tweetHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{
		router: r,
		db:     db,
		tokens: tokens,
		media:  media,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, accessToken string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Logf("Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
		t.FailNow()
	}
	return &resp
}

// register creates an account and logs it in, returning the token pair.
func (s *E2ETestSuite) register(t *testing.T, username, password string) (access, refresh string, userID int64) {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"fullname": "Test " + username,
		"email":    username + "@test.com",
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	w = s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"identifier": username,
		"password":   password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	tokens := resp.Data["tokens"].(map[string]interface{})
	access = tokens["access_token"].(string)
	refresh = tokens["refresh_token"].(string)
	userID = int64(resp.Data["user"].(map[string]interface{})["id"].(float64))
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh, userID
}

// =============================================================================
// Flow 1: Registration, login, refresh rotation, logout
// =============================================================================

func TestFlow1_SessionLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	access, refresh, _ := suite.register(t, "alice", "Password123!")

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "alice",
			"fullname": "Alice Again",
			"email":    "alice@test.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"identifier": "alice",
			"password":   "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login with unknown user", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"identifier": "nobody",
			"password":   "Password123!",
		}, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /users/me with access token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/users/me", nil, access)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "password_hash")
	})

	var rotated string
	t.Run("refresh rotates the token pair", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": refresh,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, "refresh failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		tokens := resp.Data["tokens"].(map[string]interface{})
		rotated = tokens["refresh_token"].(string)
		assert.NotEmpty(t, rotated)
		assert.NotEqual(t, refresh, rotated, "rotation must produce a new refresh token")
	})

	t.Run("old refresh token is dead after rotation", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": refresh,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/logout", nil, access)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": rotated,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "rotated token must be dead after logout")
	})

	t.Run("request without token is rejected", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/users/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Flow 2: Video deletion cascade
// =============================================================================

func TestFlow2_VideoDeletionCascade(t *testing.T) {
	suite := setupTestSuite(t)

	ownerAccess, _, ownerID := suite.register(t, "owner", "Password123!")
	otherAccess, _, otherID := suite.register(t, "viewer", "Password123!")
	_, _, thirdID := suite.register(t, "lurker", "Password123!")

	// Target video plus a survivor that shares the playlist.
	target := domain.Video{
		OwnerID:      ownerID,
		Title:        "Doomed video",
		Description:  "Will be deleted",
		VideoURL:     "https://media.test/videos/doomed.mp4",
		VideoKey:     "videos/doomed.mp4",
		ThumbnailURL: "https://media.test/thumbnails/doomed.jpg",
		ThumbnailKey: "thumbnails/doomed.jpg",
		IsPublished:  true,
	}
	require.NoError(t, suite.db.Create(&target).Error)

	survivor := domain.Video{
		OwnerID:     ownerID,
		Title:       "Survivor video",
		Description: "Stays put",
		VideoKey:    "videos/survivor.mp4",
		IsPublished: true,
	}
	require.NoError(t, suite.db.Create(&survivor).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, suite.db.Create(&domain.Comment{
			VideoID: target.ID,
			OwnerID: otherID,
			Content: fmt.Sprintf("comment %d", i+1),
		}).Error)
	}

	for _, userID := range []int64{ownerID, otherID, thirdID} {
		videoID := target.ID
		require.NoError(t, suite.db.Create(&domain.Like{
			LikedByID: userID,
			VideoID:   &videoID,
		}).Error)
	}
	survivorID := survivor.ID
	require.NoError(t, suite.db.Create(&domain.Like{
		LikedByID: otherID,
		VideoID:   &survivorID,
	}).Error)

	p1 := domain.Playlist{OwnerID: ownerID, Name: "p1"}
	require.NoError(t, suite.db.Create(&p1).Error)
	require.NoError(t, suite.db.Create(&domain.PlaylistVideo{PlaylistID: p1.ID, VideoID: target.ID}).Error)
	require.NoError(t, suite.db.Create(&domain.PlaylistVideo{PlaylistID: p1.ID, VideoID: survivor.ID}).Error)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/videos/%d", target.ID), nil, otherAccess)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner deletes and everything referencing the video goes away", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/videos/%d", target.ID), nil, ownerAccess)
		require.Equal(t, http.StatusOK, w.Code, "delete failed: %s", w.Body.String())

		var count int64
		suite.db.Model(&domain.Video{}).Where("id = ?", target.ID).Count(&count)
		assert.Zero(t, count, "video row must be gone")

		suite.db.Model(&domain.Comment{}).Where("video_id = ?", target.ID).Count(&count)
		assert.Zero(t, count, "comments must be gone")

		suite.db.Model(&domain.Like{}).Where("video_id = ?", target.ID).Count(&count)
		assert.Zero(t, count, "likes must be gone")

		suite.db.Model(&domain.PlaylistVideo{}).Where("video_id = ?", target.ID).Count(&count)
		assert.Zero(t, count, "playlist memberships must be gone")

		// Unrelated rows survive.
		suite.db.Model(&domain.Like{}).Where("video_id = ?", survivor.ID).Count(&count)
		assert.Equal(t, int64(1), count, "likes on other videos must survive")

		suite.db.Model(&domain.PlaylistVideo{}).Where("playlist_id = ?", p1.ID).Count(&count)
		assert.Equal(t, int64(1), count, "playlist keeps its other videos")

		suite.db.Model(&domain.Playlist{}).Where("id = ?", p1.ID).Count(&count)
		assert.Equal(t, int64(1), count, "playlist itself survives")

		assert.Contains(t, suite.media.deleted, "videos/doomed.mp4")
		assert.Contains(t, suite.media.deleted, "thumbnails/doomed.jpg")
	})

	t.Run("deleted video is 404", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/videos/%d", target.ID), nil, ownerAccess)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// Flow 3: Comments, likes, playlists over HTTP
// =============================================================================

func TestFlow3_EngagementEndpoints(t *testing.T) {
	suite := setupTestSuite(t)

	access, _, userID := suite.register(t, "creator", "Password123!")

	v := domain.Video{
		OwnerID:     userID,
		Title:       "First upload",
		Description: "hello",
		IsPublished: true,
	}
	require.NoError(t, suite.db.Create(&v).Error)

	var commentID int64
	t.Run("add and list comments", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/videos/%d/comments", v.ID), map[string]interface{}{
			"content": "nice video",
		}, access)
		require.Equal(t, http.StatusCreated, w.Code, "add comment failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		commentID = int64(resp.Data["comment"].(map[string]interface{})["id"].(float64))

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/videos/%d/comments", v.ID), nil, access)
		assert.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		assert.Equal(t, float64(1), resp.Data["total"])
	})

	t.Run("like toggles on and off", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/likes/videos/%d/toggle", v.ID), nil, access)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, true, resp.Data["liked"])

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/likes/videos/%d/toggle", v.ID), nil, access)
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		assert.Equal(t, false, resp.Data["liked"])
	})

	t.Run("playlist membership", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/playlists", map[string]interface{}{
			"name": "watch later",
		}, access)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		playlistID := int64(resp.Data["playlist"].(map[string]interface{})["id"].(float64))

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/playlists/%d/videos/%d", playlistID, v.ID), nil, access)
		assert.Equal(t, http.StatusOK, w.Code)

		// Adding the same video twice conflicts.
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/playlists/%d/videos/%d", playlistID, v.ID), nil, access)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/playlists/%d", playlistID), nil, access)
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		ids := resp.Data["playlist"].(map[string]interface{})["video_ids"].([]interface{})
		assert.Len(t, ids, 1)
	})

	t.Run("comment owner can delete it", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/comments/%d", commentID), nil, access)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("dashboard aggregates", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/dashboard/stats", nil, access)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		stats := resp.Data["stats"].(map[string]interface{})
		assert.Equal(t, float64(1), stats["total_videos"])
	})
}
