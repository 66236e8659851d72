package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	MiddleName   *string   `gorm:"size:100" json:"middle_name,omitempty"`
	LastName     *string   `gorm:"size:100" json:"last_name,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Posts        []Post    `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName renders first and last name for the agent payload.
func (u *User) FullName() string {
	if u.LastName == nil {
		return u.FirstName
	}
	return strings.TrimSpace(u.FirstName + " " + *u.LastName)
}
