// Package testhelpers starts throwaway PostgreSQL and Redis containers for
// integration tests. Both are shared across the tests of one package run.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"helpdesk-agent/pkg/config"
	"helpdesk-agent/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
)

type TestDB struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
}

var (
	sharedDB     *TestDB
	sharedDBOnce sync.Once
	sharedDBErr  error

	sharedRedis     *goredis.Client
	sharedRedisOnce sync.Once
	sharedRedisErr  error
)

// GetTestDB returns a migrated PostgreSQL database. migrationsPath is
// relative to the calling package.
func GetTestDB(t *testing.T, migrationsPath string) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB(migrationsPath)
	})
	if sharedDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedDBErr)
	}
	return sharedDB
}

func setupTestDB(migrationsPath string) (*TestDB, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "helpdesk_test",
				"POSTGRES_USER":     "helpdesk",
				"POSTGRES_PASSWORD": "test_password",
			},
			// postgres restarts once after running its init scripts
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	cfg := &config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "helpdesk",
		Password: "test_password",
		DBName:   "helpdesk_test",
		SSLMode:  "disable",
	}
	pool, err := postgres.NewPool(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(pool, migrationsPath, zap.NewNop()); err != nil {
		pool.Close()
		return nil, err
	}

	return &TestDB{Container: container, Pool: pool}, nil
}

// GetTestRedis returns a client connected to a fresh Redis container.
func GetTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedRedisOnce.Do(func() {
		sharedRedis, sharedRedisErr = setupTestRedis()
	})
	if sharedRedisErr != nil {
		t.Fatalf("Failed to setup test redis: %v", sharedRedisErr)
	}
	return sharedRedis
}

func setupTestRedis() (*goredis.Client, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
