package models

import "time"

// AdminRole is the role name that gates administrative endpoints.
const AdminRole = "Admin"

type Role struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:200;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
