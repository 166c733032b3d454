package models

// UserRole represents the join between users and roles. The underlying
// `user_roles` table uses a composite primary key (user_id, role_id) and
// does not have a single `id` column.
type UserRole struct {
	UserID string `gorm:"primaryKey;size:36"`
	RoleID int64  `gorm:"primaryKey"`
}
