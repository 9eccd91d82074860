//go:build integration

package pg

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/petchan-dev/petchan/internal/config"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "petchan"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to get container host: %s", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to get container port: %s", err)
	}

	s, err := New(config.Pg{
		Host:     host,
		Port:     port.Int(),
		User:     dbUser,
		Password: dbPassword,
		Dbname:   dbName,
	})
	if err != nil {
		log.Fatalf("failed to connect to test db: %s", err)
	}
	return s, container
}

func teardown(ctx context.Context, s *Storage, container *postgres.PostgresContainer) {
	if s != nil {
		s.Cleanup()
	}
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func mustInsertCategoryPair(t *testing.T) (string, string) {
	t.Helper()
	var mainId, subId string
	err := storage.db.QueryRow(
		`INSERT INTO categories (name, type, display_order) VALUES ('犬', 'main', 1) RETURNING id`,
	).Scan(&mainId)
	if err != nil {
		t.Fatalf("insert main category: %s", err)
	}
	err = storage.db.QueryRow(
		`INSERT INTO categories (name, type, parent_id, display_order) VALUES ('しつけ', 'sub', $1, 1) RETURNING id`,
		mainId,
	).Scan(&subId)
	if err != nil {
		t.Fatalf("insert sub category: %s", err)
	}
	return mainId, subId
}

func uniqueIP(n int) string {
	return fmt.Sprintf("198.51.100.%d", n)
}
