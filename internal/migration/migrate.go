package migration

import (
	"github.com/damoang/angple-search/internal/domain"
	"gorm.io/gorm"
)

// Run creates or updates the search tables via AutoMigrate.
// This is safe to run multiple times (AutoMigrate is idempotent).
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Community{},
		&domain.Membership{},
		&domain.CommunityImage{},
		&domain.Post{},
		&domain.Comment{},
		&domain.PostReaction{},
	)
}
