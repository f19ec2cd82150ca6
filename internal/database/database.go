package database

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds database connection details.
type Config struct {
	DSN string
}

// Gateway lazily opens and caches a single database handle for the life of
// the process. Connect is safe for concurrent use: the mutex guarantees at
// most one connection attempt is in flight, and concurrent callers all
// observe the outcome of that attempt.
type Gateway struct {
	cfg Config

	mu sync.Mutex
	db *gorm.DB
}

// New creates a Gateway. It fails fast when no DSN is configured so a
// misconfigured process dies at startup rather than on the first request.
func New(cfg Config) (*Gateway, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	return &Gateway{cfg: cfg}, nil
}

// Connect returns the shared database handle, opening the connection on the
// first call. There is no teardown; the connection lives as long as the
// process does.
func (g *Gateway) Connect() (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	db, err := gorm.Open(dialectorFor(g.cfg.DSN), &gorm.Config{
		// The product->provider reference is a soft reference; no foreign
		// key constraint may be created for it.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected")
	g.db = db
	return g.db, nil
}

// dialectorFor picks the GORM driver from the DSN shape: sqlite for file and
// in-memory DSNs, postgres for everything else.
func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") || strings.HasSuffix(dsn, ".db") {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}
