package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	// SQLite driver.
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultPath = "data/games"
)

// Config selects the backing database.
type Config struct {
	Driver string
	// Path is the SQLite file path without the .sqlite suffix.
	Path string
	// DSN is the Postgres connection string.
	DSN string
	// OpenParams are extra SQLite DSN parameters in key=value form.
	OpenParams []string
}

// Database owns the shared connection and the GORM session built on top of it.
type Database struct {
	orm     *gorm.DB
	db      *sql.DB
	driver  string
	tracker *queryLatencyTracker
}

// New opens the SQLite database at the provided path.
func New(path string, openParams ...string) (*Database, error) {
	return Open(Config{Driver: DriverSQLite, Path: path, OpenParams: openParams})
}

// Open connects to the configured database and applies pending migrations.
func Open(cfg Config) (*Database, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		sqlDB   *sql.DB
		dialect goose.Dialect
		err     error
	)
	switch driver {
	case DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = defaultPath
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		sqlDB, err = sql.Open("sqlite", sqliteDSN(path, cfg.OpenParams...))
		dialect = goose.DialectSQLite3
	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		sqlDB, err = sql.Open("pgx", cfg.DSN)
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(sqlDB, driver, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	tracker := newQueryLatencyTracker()
	pool := newInstrumentedConn(sqlDB, driver, tracker)

	var dialector gorm.Dialector
	if driver == DriverPostgres {
		dialector = postgres.New(postgres.Config{Conn: pool})
	} else {
		dialector = &sqlite.Dialector{Conn: pool}
	}
	orm, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Database{orm: orm, db: sqlDB, driver: driver, tracker: tracker}, nil
}

func migrate(sqlDB *sql.DB, driver string, dialect goose.Dialect) error {
	migrations, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func sqliteDSN(path string, openParams ...string) string {
	values := url.Values{}
	values.Set("_fk", "1")

	values.Add("_pragma", "foreign_keys(ON)")
	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	values.Add("_pragma", "temp_store(MEMORY)")
	values.Add("_pragma", "cache_size(-200000)")
	values.Add("_pragma", "wal_autocheckpoint(1000)")

	for _, param := range openParams {
		part := strings.TrimSpace(strings.TrimPrefix(param, "&"))
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		values.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return fmt.Sprintf("file:%s.sqlite?%s", path, values.Encode())
}

// ORM returns the GORM session bound to the instrumented connection.
func (c *Database) ORM() *gorm.DB {
	return c.orm
}

// Driver reports which backend is open.
func (c *Database) Driver() string {
	return c.driver
}

// Ping verifies the connection is usable.
func (c *Database) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (c *Database) Close() error {
	return c.db.Close()
}
