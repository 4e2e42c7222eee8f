package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/forripsys/Fytouli/models"
)

// DB is the shared database handle, set once at startup.
var DB *gorm.DB

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}

// ConnectDB opens the database from DATABASE_URL and migrates the schema.
func ConnectDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fytouli.db"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Plant{}, &models.Schedule{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	DB = db
}
