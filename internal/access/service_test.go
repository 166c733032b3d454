package access

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"access_management/internal/models"
)

func setupSuite(tb testing.TB) (func(tb testing.TB), *Service) {
	dbName := "access_service_test.db"

	e := os.Remove(dbName)
	if e != nil {
		if !strings.Contains(e.Error(), "no such file or directory") {
			log.Fatal(e)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal(err)
	}

	err = gdb.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{},
		&models.Door{}, &models.DoorRole{}, &models.AccessEvent{})
	if err != nil {
		log.Fatal(err)
	}

	svc := &Service{DB: gdb}

	return func(tb testing.TB) {
		if err := os.Remove(dbName); err != nil {
			log.Fatal(err)
		}
	}, svc
}

func createUser(tb testing.TB, db *gorm.DB, id string, roleIDs ...int64) {
	user := models.User{ID: id, Email: id + "@example.com", TokenVersion: "v1"}
	if err := db.Create(&user).Error; err != nil {
		tb.Fatal(err)
	}
	for _, rid := range roleIDs {
		if err := db.Create(&models.UserRole{UserID: id, RoleID: rid}).Error; err != nil {
			tb.Fatal(err)
		}
	}
}

func createRole(tb testing.TB, db *gorm.DB, name string) int64 {
	role := models.Role{Name: name}
	if err := db.Create(&role).Error; err != nil {
		tb.Fatal(err)
	}
	return role.ID
}

func createDoor(tb testing.TB, db *gorm.DB, name string, roleIDs ...int64) int64 {
	door := models.Door{Name: name}
	if err := db.Create(&door).Error; err != nil {
		tb.Fatal(err)
	}
	for _, rid := range roleIDs {
		if err := db.Create(&models.DoorRole{DoorID: door.ID, RoleID: rid}).Error; err != nil {
			tb.Fatal(err)
		}
	}
	return door.ID
}

func TestCanGrantAccessSharedRole(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	employee := createRole(t, svc.DB, "Employee")
	createUser(t, svc.DB, "user-1", employee)
	doorID := createDoor(t, svc.DB, "Lobby", employee)

	granted, err := svc.CanGrantAccess(context.Background(), "user-1", doorID)
	assert.NoError(t, err)
	assert.True(t, granted)
}

func TestCanGrantAccessNoSharedRole(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	employee := createRole(t, svc.DB, "Employee")
	director := createRole(t, svc.DB, "Director")
	createUser(t, svc.DB, "user-1", employee)
	doorID := createDoor(t, svc.DB, "Server Room", director)

	granted, err := svc.CanGrantAccess(context.Background(), "user-1", doorID)
	assert.NoError(t, err)
	assert.False(t, granted)
}

func TestCanGrantAccessUnassignedDoorDeniesEveryone(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	admin := createRole(t, svc.DB, "Admin")
	createUser(t, svc.DB, "admin-1", admin)
	doorID := createDoor(t, svc.DB, "Lobby")

	granted, err := svc.CanGrantAccess(context.Background(), "admin-1", doorID)
	assert.NoError(t, err)
	assert.False(t, granted)
}

func TestCanGrantAccessUnknownDoor(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	createUser(t, svc.DB, "user-1")

	_, err := svc.CanGrantAccess(context.Background(), "user-1", 999)
	assert.ErrorIs(t, err, ErrDoorNotFound)
}

func TestRecordEventWritesOneRowPerAttempt(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	createUser(t, svc.DB, "user-1")
	doorID := createDoor(t, svc.DB, "Lobby")

	countEvents := func() int64 {
		var n int64
		assert.NoError(t, svc.DB.Model(&models.AccessEvent{}).Count(&n).Error)
		return n
	}

	// Denied attempts are logged exactly like granted ones.
	err := svc.RecordEvent(context.Background(), "user-1", doorID, models.AccessMethodTag, false, "10.0.0.1")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, countEvents())

	err = svc.RecordEvent(context.Background(), "user-1", doorID, models.AccessMethodRemote, true, "10.0.0.1")
	assert.NoError(t, err)
	assert.EqualValues(t, 2, countEvents())
}

func TestDoorHistoryFiltersAndOrders(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	createUser(t, svc.DB, "user-1")
	createUser(t, svc.DB, "user-2")
	lobby := createDoor(t, svc.DB, "Lobby")
	vault := createDoor(t, svc.DB, "Vault")

	ctx := context.Background()
	assert.NoError(t, svc.RecordEvent(ctx, "user-1", lobby, models.AccessMethodTag, true, ""))
	assert.NoError(t, svc.RecordEvent(ctx, "user-2", lobby, models.AccessMethodRemote, true, ""))
	assert.NoError(t, svc.RecordEvent(ctx, "user-1", lobby, models.AccessMethodTag, false, ""))
	assert.NoError(t, svc.RecordEvent(ctx, "user-1", vault, models.AccessMethodTag, false, ""))

	lobbyHistory, err := svc.DoorHistory(ctx, lobby)
	assert.NoError(t, err)
	assert.Len(t, lobbyHistory, 3)
	for _, rec := range lobbyHistory {
		assert.Equal(t, lobby, rec.DoorID)
	}
	assert.True(t, lobbyHistory[0].IsSuccess)
	assert.True(t, lobbyHistory[1].IsSuccess)
	assert.False(t, lobbyHistory[2].IsSuccess)
	for i := 1; i < len(lobbyHistory); i++ {
		assert.False(t, lobbyHistory[i].AccessTime.Before(lobbyHistory[i-1].AccessTime))
	}

	vaultHistory, err := svc.DoorHistory(ctx, vault)
	assert.NoError(t, err)
	assert.Len(t, vaultHistory, 1)

	// Per-door histories partition the full log.
	var total int64
	assert.NoError(t, svc.DB.Model(&models.AccessEvent{}).Count(&total).Error)
	assert.EqualValues(t, total, len(lobbyHistory)+len(vaultHistory))
}

func TestUserHistoryFilters(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	createUser(t, svc.DB, "user-1")
	createUser(t, svc.DB, "user-2")
	lobby := createDoor(t, svc.DB, "Lobby")

	ctx := context.Background()
	assert.NoError(t, svc.RecordEvent(ctx, "user-1", lobby, models.AccessMethodTag, true, ""))
	assert.NoError(t, svc.RecordEvent(ctx, "user-2", lobby, models.AccessMethodTag, false, ""))

	history, err := svc.UserHistory(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "user-1", history[0].UserID)
	assert.Equal(t, string(models.AccessMethodTag), history[0].AccessMethod)
}

func TestHistoryReadsAreIdempotent(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	createUser(t, svc.DB, "user-1")
	lobby := createDoor(t, svc.DB, "Lobby")

	ctx := context.Background()
	assert.NoError(t, svc.RecordEvent(ctx, "user-1", lobby, models.AccessMethodRemote, true, ""))

	first, err := svc.DoorHistory(ctx, lobby)
	assert.NoError(t, err)
	second, err := svc.DoorHistory(ctx, lobby)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecordEventUnknownDoorViolatesReference(t *testing.T) {
	// Opened with foreign-key enforcement on, unlike the shared suite,
	// so the referential-integrity failure actually surfaces.
	dbName := "access_service_fk_test.db"
	e := os.Remove(dbName)
	if e != nil {
		if !strings.Contains(e.Error(), "no such file or directory") {
			log.Fatal(e)
		}
	}
	defer os.Remove(dbName)

	gdb, err := gorm.Open(sqlite.Open(dbName+"?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal(err)
	}
	err = gdb.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{},
		&models.Door{}, &models.DoorRole{}, &models.AccessEvent{})
	if err != nil {
		log.Fatal(err)
	}
	svc := &Service{DB: gdb}

	createUser(t, svc.DB, "user-1")

	err = svc.RecordEvent(context.Background(), "user-1", 424242, models.AccessMethodTag, false, "")
	assert.ErrorIs(t, err, ErrEventReference)

	// The failed write must not leave a partial record behind.
	var n int64
	assert.NoError(t, svc.DB.Model(&models.AccessEvent{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestHistoryForDoorWithNoEventsIsEmpty(t *testing.T) {
	teardownSuite, svc := setupSuite(t)
	defer teardownSuite(t)

	lobby := createDoor(t, svc.DB, "Lobby")

	history, err := svc.DoorHistory(context.Background(), lobby)
	assert.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
