package main

import (
	"fmt"
	"log"

	"access_management/internal/config"
	"access_management/internal/db"
	httpserver "access_management/internal/http"
	"access_management/internal/seed"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb)

	if err := seed.FirstSetup(gdb, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	r := httpserver.NewRouter(gdb, cfg.JWTSecret)
	log.Printf("server listening on :%s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
