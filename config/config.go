package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database selected by DB_DRIVER (mysql, postgres or
// sqlite). The original deployment ran on Postgres; sqlite is handy for
// local development.
func InitDB() (*gorm.DB, error) {
	driver := env("DB_DRIVER", "postgres")

	switch driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			env("DB_HOST", "localhost"),
			env("DB_USER", "postgres"),
			env("DB_PASSWORD", ""),
			env("DB_NAME", "reservations"),
			env("DB_PORT", "5432"),
			env("DB_SSLMODE", "disable"),
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env("DB_USER", "root"),
			env("DB_PASSWORD", ""),
			env("DB_HOST", "localhost"),
			env("DB_PORT", "3306"),
			env("DB_NAME", "reservations"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(env("DB_PATH", "reservations.db")), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
