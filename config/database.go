package config

import (
	"fmt"
	"log"
	"os"

	"github.com/salonewatch/bot-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dbHost := getenv("DB_HOST", "localhost")
		dbUser := getenv("DB_USER", "postgres")
		dbPassword := os.Getenv("DB_PASSWORD")
		dbName := getenv("DB_NAME", "salonewatch")
		dbPort := getenv("DB_PORT", "5432")

		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			dbHost, dbUser, dbPassword, dbName, dbPort)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Issue{},
		&models.Vote{},
		&models.TrackerEntry{},
		&models.PointEntry{},
		&models.ResponderGroup{},
		&models.GroupMember{},
		&models.Feedback{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
