package config

import (
	"log"
	"os"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret used to sign tokens — set by Load from env or fallback
var JWTSecret = []byte("food_ordering_super_secret_2024")

type Config struct {
	Port   string
	DBPath string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		JWTSecret = []byte(secret)
	}
	return Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "food_ordering.db"),
	}
}

// OpenDB connects to the sqlite database and migrates the schema.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.DeliveryAgent{},
		&models.Order{},
		&models.OrderDetail{},
		&models.Review{},
		&models.PaymentMethod{},
		&models.Payment{},
		&models.SplitPayment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
