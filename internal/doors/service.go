package doors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"access_management/internal/models"
)

var (
	ErrDoorNotFound = errors.New("door not found")
	ErrRoleNotFound = errors.New("role not found")
	// ErrDuplicateAssignment means the (door, role) pair already exists.
	// The composite primary key on door_roles guarantees a second insert
	// can never create a duplicate record.
	ErrDuplicateAssignment = errors.New("role already assigned to door")
)

// Service manages the door inventory and the door-role permission pairs.
type Service struct {
	DB *gorm.DB
}

// DoorSummary is the listing shape for doors. Field casing is part of the
// wire contract.
type DoorSummary struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

// Exists reports whether a door with the given id is registered. The HTTP
// boundary uses this to reject unknown doors before any decision or
// history call.
func (s *Service) Exists(ctx context.Context, doorID int64) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Door{}).Where("id = ?", doorID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check door %d: %w", doorID, err)
	}
	return count > 0, nil
}

// List returns all registered doors.
func (s *Service) List(ctx context.Context) ([]DoorSummary, error) {
	var all []models.Door
	if err := s.DB.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list doors: %w", err)
	}

	out := make([]DoorSummary, 0, len(all))
	for _, d := range all {
		out = append(out, DoorSummary{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// Create registers a new door with an empty permitted-role set, so nobody
// can open it until a role is assigned.
func (s *Service) Create(ctx context.Context, name string) error {
	door := models.Door{Name: name}
	if err := s.DB.WithContext(ctx).Create(&door).Error; err != nil {
		return fmt.Errorf("create door: %w", err)
	}
	return nil
}

// AssignRole permits the named role to open the door. The role must already
// exist in the role store. Assigning a pair that is already present returns
// ErrDuplicateAssignment and leaves the table unchanged.
func (s *Service) AssignRole(ctx context.Context, doorID int64, roleName string) error {
	var role models.Role
	err := s.DB.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve role %q: %w", roleName, err)
	}

	pair := models.DoorRole{DoorID: doorID, RoleID: role.ID}
	err = s.DB.WithContext(ctx).Create(&pair).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAssignment
	}
	if err != nil {
		return fmt.Errorf("assign role %q to door %d: %w", roleName, doorID, err)
	}
	return nil
}
