package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"access_management/internal/models"
)

var (
	// ErrDoorNotFound is returned when a decision or history lookup
	// references a door that does not exist.
	ErrDoorNotFound = errors.New("door not found")
	// ErrEventReference is returned when an event insert fails because the
	// referenced user or door no longer exists in storage.
	ErrEventReference = errors.New("event references unknown user or door")
)

// Service answers grant/deny decisions and maintains the append-only audit
// log of open attempts. It never updates or deletes an event row.
type Service struct {
	DB *gorm.DB
}

// HistoryRecord is one audit entry as exposed to history consumers. The JSON
// field names are the service's wire contract and must not change.
type HistoryRecord struct {
	UserID       string    `json:"userId"`
	DoorID       int64     `json:"DoorId"`
	AccessTime   time.Time `json:"AccessTime"`
	IsSuccess    bool      `json:"IsSuccess"`
	AccessMethod string    `json:"AccessMethod"`
}

// CanGrantAccess decides whether the user may open the door: true iff the
// user's role set intersects the door's permitted role set. The decision is
// pure — it records nothing; event logging is a separate, unconditional step.
func (s *Service) CanGrantAccess(ctx context.Context, userID string, doorID int64) (bool, error) {
	var door models.Door
	err := s.DB.WithContext(ctx).Preload("Roles").First(&door, doorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrDoorNotFound
	}
	if err != nil {
		return false, fmt.Errorf("load door %d: %w", doorID, err)
	}

	var userRoles []models.UserRole
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&userRoles).Error; err != nil {
		return false, fmt.Errorf("load roles for user %s: %w", userID, err)
	}

	held := make([]int64, 0, len(userRoles))
	for _, ur := range userRoles {
		held = append(held, ur.RoleID)
	}
	permitted := make([]int64, 0, len(door.Roles))
	for _, r := range door.Roles {
		permitted = append(permitted, r.ID)
	}

	return Intersects(held, permitted), nil
}

// RecordEvent appends exactly one audit record for an open attempt. It is
// called on both the grant and the deny path; a denied attempt must appear
// in the log just like a granted one. The timestamp is assigned here, never
// taken from the caller.
func (s *Service) RecordEvent(ctx context.Context, userID string, doorID int64, method models.AccessMethod, granted bool, ip string) error {
	ev := models.AccessEvent{
		UserID:       userID,
		DoorID:       doorID,
		AccessTime:   time.Now().UTC(),
		IsSuccess:    granted,
		AccessMethod: method,
		IP:           ip,
	}

	err := s.DB.WithContext(ctx).Create(&ev).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrEventReference
	}
	if err != nil {
		return fmt.Errorf("record access event: %w", err)
	}
	return nil
}

// DoorHistory returns every recorded attempt against the door, oldest first.
// A door with no history yields an empty slice.
func (s *Service) DoorHistory(ctx context.Context, doorID int64) ([]HistoryRecord, error) {
	return s.history(ctx, "door_id = ?", doorID)
}

// UserHistory returns every recorded attempt by the user, oldest first.
func (s *Service) UserHistory(ctx context.Context, userID string) ([]HistoryRecord, error) {
	return s.history(ctx, "user_id = ?", userID)
}

func (s *Service) history(ctx context.Context, cond string, arg any) ([]HistoryRecord, error) {
	var events []models.AccessEvent
	err := s.DB.WithContext(ctx).
		Where(cond, arg).
		Order("access_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query access history: %w", err)
	}

	records := make([]HistoryRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, HistoryRecord{
			UserID:       ev.UserID,
			DoorID:       ev.DoorID,
			AccessTime:   ev.AccessTime,
			IsSuccess:    ev.IsSuccess,
			AccessMethod: string(ev.AccessMethod),
		})
	}
	return records, nil
}
