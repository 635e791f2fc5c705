package repositories

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alphavelocity/moneyclip/internal/db"
	"github.com/alphavelocity/moneyclip/internal/models"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gdb.AutoMigrate(&models.FXRate{}, &models.Asset{}, &models.Trade{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return &db.DB{DB: gdb}
}
