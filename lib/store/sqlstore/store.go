package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ValentinKolb/roads/lib/store"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/lni/dragonboat/v4/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

var Logger = logger.GetLogger("store")

const (
	// DriverSQLite is the name of the sqlite driver, the dsn is the path of the database file
	DriverSQLite = "sqlite3"
	// DriverMySQL is the name of the mysql driver, the dsn is passed to the driver unchanged
	DriverMySQL = "mysql"
)

var (
	//go:embed schema.sqlite3.sql
	sqliteSchema string

	//go:embed schema.mysql.sql
	mysqlSchema string
)

// Store implements store.IStore on top of database/sql.
// It holds exactly one connection for its whole lifetime. Concurrent callers
// wait for that connection, so statements are never interleaved on it.
type Store struct {
	db     *sql.DB
	driver string
	codec  serializer.ISerializer
	closed atomic.Bool
}

var _ store.IStore = (*Store)(nil)

// Open connects to the store behind dsn using the given driver.
// The codec is used for the road blobs stored in the roads table.
//
// Usage:
//
//	s, err := sqlstore.Open(sqlstore.DriverSQLite, "roads.db", serializer.NewJSONSerializer())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
func Open(driver, dsn string, codec serializer.ISerializer) (*Store, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported driver %s (expected one of: %s, %s)", driver, DriverSQLite, DriverMySQL)
	}
	if codec == nil {
		return nil, fmt.Errorf("no codec given for the road blobs")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one connection for the lifetime of the store
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	// verify the connection works
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	Logger.Infof("opened %s store", driver)

	return &Store{
		db:     db,
		driver: driver,
		codec:  codec,
	}, nil
}

// InitSchema creates the countries, towns and roads tables if they do not exist yet.
// The server never calls this, it expects the schema to be present.
func (s *Store) InitSchema(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	schema := sqliteSchema
	if s.driver == DriverMySQL {
		schema = mysqlSchema
	}

	// mysql rejects multiple statements per call unless configured in the dsn
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return store.NewError(store.RetCQueryFailed, "failed to create schema", err)
		}
	}
	return nil
}

// Close closes the connection. Closing twice is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	Logger.Infof("closing %s store", s.driver)
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct statements.
// Use with caution, prefer the Store methods.
func (s *Store) DB() *sql.DB {
	return s.db
}

// checkOpen returns a store error if the store was closed
func (s *Store) checkOpen() error {
	if s.closed.Load() {
		return store.NewError(store.RetCUnavailable, "store is closed", nil)
	}
	return nil
}
