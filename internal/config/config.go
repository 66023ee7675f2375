package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file when one exists. Real environment variables
// always win over file values.
func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("config: load .env: %v", err)
	}
}

// Getenv returns the variable or a default.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
