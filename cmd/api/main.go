package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/middleware"
	"clipstream/internal/modules/auth"
	"clipstream/internal/modules/comment"
	"clipstream/internal/modules/dashboard"
	"clipstream/internal/modules/like"
	"clipstream/internal/modules/playlist"
	"clipstream/internal/modules/subscription"
	"clipstream/internal/modules/tweet"
	"clipstream/internal/modules/video"
	"clipstream/internal/modules/watch"
	"clipstream/internal/pkg/mediastore"
	"clipstream/internal/pkg/token"
	"clipstream/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	media, err := mediastore.New(context.Background(), mediastore.Config{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.MediaPublicURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	tokens := token.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	hub := watch.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, media, auth.CookieConfig{
		Secure:     cfg.CookieSecure,
		SameSite:   cfg.CookieSameSite,
		Path:       cfg.CookiePath,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	videoService := video.NewService(videoRepo, commentRepo, likeRepo, playlistRepo, media)
	videoHandler := video.NewHandler(videoService)

	commentService := comment.NewService(commentRepo, videoRepo, hub)
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

	wsHandler := watch.NewWSHandler(hub, tokens)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
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
	}

	// WebSocket authenticates via query token, not the auth middleware.
	r.GET("/ws/videos/:id", wsHandler.HandleWebSocket)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
