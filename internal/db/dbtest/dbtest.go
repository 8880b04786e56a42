// Package dbtest opens throwaway databases for tests: an in-memory sqlite
// database per test, or a PostgreSQL container for integration runs.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

// NewSQLite returns a migrated in-memory database private to the test.
func NewSQLite(t testing.TB) *db.DB {
	t.Helper()

	database, err := db.Connect(&db.Config{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	if err := database.Migrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewPostgres starts a PostgreSQL container and returns a migrated
// connection to it. The container is terminated when the test ends.
func NewPostgres(t testing.TB) *db.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-based DB tests in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("portfolio_test"),
		postgres.WithUsername("portfolio_user"),
		postgres.WithPassword("portfolio_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	database, err := db.Connect(&db.Config{
		Driver:   db.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		User:     "portfolio_user",
		Password: "portfolio_password",
		Name:     "portfolio_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(models.All()...); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
