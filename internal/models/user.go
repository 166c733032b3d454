package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255"`
	// TokenVersion is embedded in issued JWTs and rotated whenever the
	// user's roles change, invalidating outstanding tokens.
	TokenVersion string `gorm:"size:36;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Roles        []Role        `gorm:"many2many:user_roles;"`
	Events       []AccessEvent `gorm:"foreignKey:UserID"`
}
