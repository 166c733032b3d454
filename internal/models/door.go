package models

import "time"

type Door struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Roles permitted to open this door. A door with no roles assigned
	// grants access to nobody.
	Roles  []Role        `gorm:"many2many:door_roles;"`
	Events []AccessEvent `gorm:"foreignKey:DoorID"`
}
