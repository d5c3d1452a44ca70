package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"clipstream/internal/database"
	"clipstream/internal/domain"
	"clipstream/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("clipstream.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM likes")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM playlist_videos")
	db.Exec("DELETE FROM playlists")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM tweets")
	db.Exec("DELETE FROM videos")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	usernames := []string{"asel", "bekzat", "dina", "yerlan"}
	users := make([]domain.User, 0, len(usernames))
	for i, name := range usernames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		u := domain.User{
			Username:     name,
			Email:        fmt.Sprintf("%s@clipstream.dev", name),
			FullName:     fmt.Sprintf("Creator %d", i+1),
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, &u); err != nil {
			log.Fatal("user create failed:", err)
		}
		users = append(users, u)
		log.Printf("User created: %s / password123", u.Email)
	}

	// ================== VIDEOS ==================
	log.Println("Creating videos...")
	titles := []string{
		"Morning routine in Almaty",
		"Street food tour",
		"Building a home studio",
		"Trail running basics",
		"City timelapse",
		"Budget travel tips",
	}
	videos := make([]domain.Video, 0, len(titles))
	for i, title := range titles {
		owner := users[i%len(users)]
		v := domain.Video{
			OwnerID:      owner.ID,
			Title:        title,
			Description:  "Sample footage uploaded by the seeder",
			VideoURL:     fmt.Sprintf("https://media.clipstream.dev/videos/seed-%d.mp4", i+1),
			VideoKey:     fmt.Sprintf("videos/seed/seed-%d.mp4", i+1),
			ThumbnailURL: fmt.Sprintf("https://media.clipstream.dev/thumbnails/seed-%d.jpg", i+1),
			ThumbnailKey: fmt.Sprintf("thumbnails/seed/seed-%d.jpg", i+1),
			Duration:     60 + rand.Float64()*540,
			Views:        int64(rand.Intn(5000)),
			IsPublished:  true,
		}
		db.Create(&v)
		videos = append(videos, v)
	}

	// ================== COMMENTS & LIKES ==================
	log.Println("Creating comments and likes...")
	for _, v := range videos {
		for i := 0; i < 2; i++ {
			commenter := users[rand.Intn(len(users))]
			db.Create(&domain.Comment{
				VideoID: v.ID,
				OwnerID: commenter.ID,
				Content: fmt.Sprintf("Comment %d on %q", i+1, v.Title),
			})
		}
		for _, u := range users {
			if rand.Intn(2) == 0 {
				videoID := v.ID
				db.Create(&domain.Like{
					LikedByID: u.ID,
					VideoID:   &videoID,
				})
			}
		}
	}

	// ================== PLAYLISTS ==================
	log.Println("Creating playlists...")
	for _, u := range users[:2] {
		p := domain.Playlist{
			OwnerID:     u.ID,
			Name:        fmt.Sprintf("%s's favorites", u.Username),
			Description: "Seeded playlist",
		}
		db.Create(&p)
		for _, v := range videos[:3] {
			db.Create(&domain.PlaylistVideo{
				PlaylistID: p.ID,
				VideoID:    v.ID,
			})
		}
	}

	// ================== SUBSCRIPTIONS & TWEETS ==================
	log.Println("Creating subscriptions and tweets...")
	for i, u := range users {
		channel := users[(i+1)%len(users)]
		db.Create(&domain.Subscription{
			SubscriberID: u.ID,
			ChannelID:    channel.ID,
		})
		db.Create(&domain.Tweet{
			OwnerID: u.ID,
			Content: fmt.Sprintf("Hello from %s!", u.Username),
		})
	}

	log.Println("Seed complete.")
}
