package store

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Driver names a supported storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"

	sqliteScheme = "sqlite://"
	memoryScheme = "memory://"
)

// DriverFromURL resolves the storage backend from the database URL scheme.
func DriverFromURL(dbURL string) (Driver, error) {
	switch {
	case strings.HasPrefix(dbURL, sqliteScheme):
		return DriverSQLite, nil
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(dbURL, memoryScheme):
		return DriverMemory, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme: %q", dbURL)
	}
}

// SQLitePath returns the file path of a sqlite:// URL without its query string.
func SQLitePath(dbURL string) string {
	path := strings.TrimPrefix(dbURL, sqliteScheme)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// Migrate applies the embedded migrations of the backend named by dbURL.
// An up-to-date schema is not an error. The memory backend has no schema.
func Migrate(dbURL string) error {
	driver, err := DriverFromURL(dbURL)
	if err != nil {
		return err
	}
	if driver == DriverMemory {
		return nil
	}
	src, err := iofs.New(migrations, "migrations/"+string(driver))
	if err != nil {
		return fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
