package bootstrap

import (
	"log"

	"anoa.com/postpilot/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.PostFile{},
		&entity.Upload{},
	)
}

// SeedDevUser creates a throwaway account for local development.
func SeedDevUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "dev@postpilot.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("dev user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("devpass123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := entity.User{
		Email:        "dev@postpilot.local",
		PasswordHash: string(hashed),
		FirstName:    "Dev",
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Println("dev user seeded: dev@postpilot.local / devpass123")
	return nil
}
