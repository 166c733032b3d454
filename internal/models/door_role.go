package models

// DoorRole is the join between doors and the roles allowed to open them.
// The `door_roles` table uses a composite primary key (door_id, role_id),
// so assigning the same role to a door twice fails with a duplicate-key
// constraint violation rather than creating a second record.
type DoorRole struct {
	DoorID int64 `gorm:"primaryKey"`
	RoleID int64 `gorm:"primaryKey"`
}
