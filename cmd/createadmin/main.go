package main

import (
	"errors"
	"flag"
	"log"

	"github.com/Guiladg/wacookieexpress/config"
	"github.com/Guiladg/wacookieexpress/database"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/stores"
	"github.com/Guiladg/wacookieexpress/internal/user"
)

// createadmin bootstraps the first admin account. Safe to run repeatedly:
// it does nothing when the phone is already registered.
func main() {
	phone := flag.String("phone", "", "admin phone number")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *phone == "" || *password == "" {
		log.Fatal("both -phone and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration error: %v", err)
	}

	userStore := &stores.GormUserStore{DB: db}

	if _, err := userStore.FindByPhone(*phone); err == nil {
		log.Println("No need to create admin user")
		return
	} else if !errors.Is(err, stores.ErrNotFound) {
		log.Fatalf("Database error: %v", err)
	}

	hashed, err := user.BcryptHasher{}.Hash([]byte(*password))
	if err != nil {
		log.Fatalf("Hashing error: %v", err)
	}

	admin := &models.User{
		Phone:        *phone,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := userStore.Create(admin); err != nil {
		log.Fatalf("Could not create admin user: %v", err)
	}

	log.Println("Admin user created")
}
