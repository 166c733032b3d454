package models

import "time"

// AccessMethod is how an open attempt was made.
type AccessMethod string

const (
	AccessMethodTag    AccessMethod = "Tag"
	AccessMethodRemote AccessMethod = "Remote"
)

// AccessEvent is one immutable audit record of a door-open attempt, granted
// or denied. The composite primary key (user_id, door_id, access_time) is
// the natural key of the audit trail; AccessTime is assigned server-side at
// write time with microsecond precision and is never client-supplied.
// Nothing in the codebase updates or deletes rows of this table.
type AccessEvent struct {
	UserID       string       `gorm:"primaryKey;size:36"`
	DoorID       int64        `gorm:"primaryKey"`
	AccessTime   time.Time    `gorm:"primaryKey;precision:6"`
	IsSuccess    bool         `gorm:"not null"`
	AccessMethod AccessMethod `gorm:"size:16;not null"`
	IP           string       `gorm:"size:64"`

	User *User `gorm:"foreignKey:UserID"`
	Door *Door `gorm:"foreignKey:DoorID"`
}
