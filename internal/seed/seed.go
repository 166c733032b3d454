package seed

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"access_management/internal/models"
)

// FirstSetup bootstraps the role catalog and the admin account. It is
// idempotent and safe to run on every start.
func FirstSetup(db *gorm.DB, adminEmail, adminPassword string) error {
	roleNames := []string{models.AdminRole, "Employee", "Director"}

	rolesByName := map[string]int64{}
	for _, name := range roleNames {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		rolesByName[name] = role.ID
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := models.User{
		ID:           uuid.NewString(),
		Email:        adminEmail,
		PasswordHash: string(passHash),
		TokenVersion: uuid.NewString(),
	}
	if err := db.Where("email = ?", adminEmail).FirstOrCreate(&adminUser).Error; err != nil {
		return err
	}

	membership := models.UserRole{UserID: adminUser.ID, RoleID: rolesByName[models.AdminRole]}
	if err := db.Create(&membership).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	log.Printf("seed ok | admin=%s | roles=%v", adminEmail, roleNames)
	return nil
}
