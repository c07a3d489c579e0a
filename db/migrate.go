package db

import (
	"fmt"
	"log"

	"github.com/vderm-x/vetcare-app/models"
)

// Migrate runs AutoMigrate for every model. Init must have been called.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.DiagnosisHistory{},
		&models.ChatConversation{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
