// Package testhelper provides the PostgreSQL fixture shared by repository
// integration tests.
package testhelper

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/config"
	"github.com/heartmarshall/sapl-backend/migrations"
)

// DSNEnv points the tests at an existing database instead of a container.
const DSNEnv = "SAPL_TEST_DATABASE_DSN"

const (
	pgImage  = "postgres:17-alpine"
	pgUser   = "sapl"
	pgDBName = "sapl_test"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB returns a pool on a migrated database. Without DSNEnv one
// container is started per test binary and lives until the process exits.
// Integration tests are skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test: needs PostgreSQL")
	}

	once.Do(func() {
		sharedDSN, initErr = prepare()
	})
	if initErr != nil {
		t.Fatalf("testhelper: setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		DSN:             sharedDSN,
		MaxConns:        4,
		MinConns:        0,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	})
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func prepare() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return "", err
		}
	}
	if _, err := migrations.Up(ctx, dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

func startContainer(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgUser,
				"POSTGRES_DB":       pgDBName,
			},
			// The server logs readiness once for the init run and again after restart.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("container endpoint: %w", err)
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgUser, endpoint, pgDBName), nil
}
