package config

import (
	"fmt"
	"log"
	"os"

	"github.com/mementogram/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gormConfig is shared by every connection. TranslateError makes the driver
// report unique-constraint violations as gorm.ErrDuplicatedKey, which the
// service layer maps to Conflict.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	db.AutoMigrate(&models.Role{}, &models.User{}, &models.RefreshToken{}, &models.Post{}, &models.Comment{}, &models.Vote{}, &models.Follow{}, &models.ActivityLog{})

	return db
}
