// Package integration holds container-backed tests. These require Docker:
// each test starts a disposable PostgreSQL container, migrates the schema
// and tears everything down on completion.
//
// Run with: go test ./tests/integration/
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alphavelocity/moneyclip/internal/db"
	"github.com/alphavelocity/moneyclip/internal/models"
)

type testDB struct {
	container testcontainers.Container
	database  *db.DB
}

func setupTestDB(t *testing.T) *testDB {
	if testing.Short() {
		t.Skip("skipping container-based DB tests in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("moneyclip_test"),
		postgres.WithUsername("moneyclip_user"),
		postgres.WithPassword("moneyclip_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	database := &db.DB{DB: gdb}
	if err := database.AutoMigrate(&models.FXRate{}, &models.Asset{}, &models.Trade{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return &testDB{
		container: pgContainer,
		database:  database,
	}
}

func (tdb *testDB) cleanup(t *testing.T) {
	if err := tdb.database.Close(); err != nil {
		t.Logf("Failed to close database: %v", err)
	}
	if err := tdb.container.Terminate(context.Background()); err != nil {
		t.Errorf("Failed to terminate container: %v", err)
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}
