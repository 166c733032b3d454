package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"access_management/internal/models"
)

func Connect(dsn string) *gorm.DB {
	// TranslateError turns driver-specific constraint violations into
	// gorm.ErrDuplicatedKey, which the door-role assignment path relies on.
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, _ := gdb.DB()
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	return gdb
}

func AutoMigrate(gdb *gorm.DB) {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Door{},
		&models.DoorRole{},
		&models.AccessEvent{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
