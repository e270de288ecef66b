// Package dbtest starts a throwaway PostgreSQL for integration tests and hands out
// rollback scopes so tests never see each other's data.
package dbtest

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cristianortiz/leilaoEngine/internal/shared/db"
	"github.com/cristianortiz/leilaoEngine/internal/shared/db/migrations"
)

const (
	image    = "postgres:17-alpine"
	dbUser   = "leilao"
	dbPass   = "leilao"
	dbName   = "leiloes_test"
	pgPort   = "5432/tcp"
	bootTime = 2 * time.Minute
)

// server is the PostgreSQL shared by every integration test of the process.
// The container is left to the testcontainers reaper.
var server struct {
	start sync.Once
	dsn   string
	err   error
}

// SetupTestDB returns a pool on the migrated test database, starting the
// container on first use. The pool is closed when t finishes.
func SetupTestDB(t testing.TB) *pgxpool.Pool {
	t.Helper()

	server.start.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), bootTime)
		defer cancel()
		server.dsn, server.err = bootPostgres(ctx)
	})
	if server.err != nil {
		t.Fatalf("dbtest: postgres unavailable: %v", server.err)
	}

	pool, err := pgxpool.New(context.Background(), server.dsn)
	if err != nil {
		t.Fatalf("dbtest: open pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// Scope opens a rollback-only transaction for the test and returns the context
// carrying it. The rollback runs in t.Cleanup whatever the test outcome.
func Scope(t testing.TB, pool db.Beginner) context.Context {
	t.Helper()

	scope, err := db.BeginScope(context.Background(), pool)
	if err != nil {
		t.Fatalf("dbtest: begin scope: %v", err)
	}
	t.Cleanup(func() {
		if err := scope.Close(); err != nil {
			t.Errorf("dbtest: %v", err)
		}
	})
	return scope.Context()
}

// bootPostgres runs the container, waits until it accepts connections and
// applies the embedded migrations
func bootPostgres(ctx context.Context) (string, error) {
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{pgPort},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPass,
				"POSTGRES_DB":       dbName,
			},
			// postgres logs readiness twice, the first one is the init server
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(pgPort),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("run %s: %w", image, err)
	}

	endpoint, err := pg.PortEndpoint(ctx, pgPort, "")
	if err != nil {
		return "", fmt.Errorf("resolve %s endpoint: %w", pgPort, err)
	}

	dsn := (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbUser, dbPass),
		Host:     endpoint,
		Path:     dbName,
		RawQuery: "sslmode=disable",
	}).String()

	if err := migrations.RunMigrations(dsn); err != nil {
		return "", fmt.Errorf("migrate test database: %w", err)
	}
	return dsn, nil
}
