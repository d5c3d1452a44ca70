package repository

import (
	"clipstream/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories read and
// write. Users migrate through their row model so the nullable columns
// come out right.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Video{},
		&domain.Comment{},
		&domain.Like{},
		&domain.Playlist{},
		&domain.PlaylistVideo{},
		&domain.Subscription{},
		&domain.Tweet{},
	)
}
