package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой БД. Если БД недоступна, тест пропускается.
func SetupTestDB(t *testing.T) *TestDB {
	host := getEnv("TEST_DB_HOST", "localhost")
	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "nearby_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with backoff to wait for DB startup
	var db *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		t.Skipf("Test database is not available: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TestDB{
		DB:     db,
		Logger: logger,
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup очищает тестовые таблицы
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	tables := []string{
		"parking_lots",
		"fuel_stations",
	}

	for _, table := range tables {
		_, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table))
		if err != nil {
			// Ignore errors if table doesn't exist
			continue
		}
	}

	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
