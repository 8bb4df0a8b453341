package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vjzest/Proerty-Mangement-Zikrabyte/models"
	"github.com/vjzest/Proerty-Mangement-Zikrabyte/storage"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account. Run once after provisioning:
// ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./scripts
func main() {
	storage.InitializeDB()

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD environment variables are required")
	}

	var existing models.User
	query := storage.DB.Where("email = ?", email).Limit(1).Find(&existing)
	if query.Error != nil {
		log.Fatalf("Error checking for existing admin: %v", query.Error)
	}
	if query.RowsAffected > 0 {
		fmt.Printf("Account %s already exists, nothing to do\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	fmt.Printf("Admin account %s created successfully!\n", email)
}
