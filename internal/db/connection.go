package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "github.com/lib/pq"
)

// Config holds database configuration
type Config struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file path
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DB wraps the GORM database connection
type DB struct {
	*gorm.DB
}

// NewConfig creates a new database configuration from environment variables.
// The default is a local sqlite ledger file; set DB_DRIVER=postgres for a
// server deployment.
func NewConfig() *Config {
	return &Config{
		Driver:   getEnv("DB_DRIVER", "sqlite"),
		Path:     getEnv("DB_PATH", "moneyclip.sqlite"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "moneyclip_user"),
		Password: getEnv("DB_PASSWORD", "moneyclip_password"),
		Name:     getEnv("DB_NAME", "moneyclip"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

// Connect establishes a GORM connection to the database
func Connect(config *Config) (*DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.Password, config.Name, config.SSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(config.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool. sqlite serializes writers, so keep a single
	// connection there; postgres gets a real pool.
	if config.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks if the database connection is healthy
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetSQLDB returns the underlying *sql.DB for compatibility with existing code
func (db *DB) GetSQLDB() (*sql.DB, error) {
	return db.DB.DB()
}

// IsSQLite reports whether the connection is backed by sqlite.
func (db *DB) IsSQLite() bool {
	return db.DB.Dialector.Name() == "sqlite"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
