package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrMissingDSN is returned by the first operation that needs the store when
// no connection string was configured.
var ErrMissingDSN = errors.New("database connection string is not configured")

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Provider hands out scoped database handles. In per-call mode every Do opens
// a fresh connection and closes it on return; in pooled mode a single handle
// is opened lazily and shared.
type Provider struct {
	driver  string
	dsn     string
	mode    string
	maxOpen int

	mu     sync.Mutex
	shared *sqlx.DB
	owned  bool
}

// NewProvider creates a Provider from the database settings. It never dials.
func NewProvider(cfg *config.DatabaseConfig) *Provider {
	mode := cfg.ConnMode
	if mode == "" {
		mode = config.ConnModePerCall
	}
	return &Provider{
		driver:  cfg.Driver,
		dsn:     cfg.URL,
		mode:    mode,
		maxOpen: cfg.MaxOpenConns,
		owned:   true,
	}
}

// FromDB wraps an already open handle. The provider shares it across calls
// and never closes it.
func FromDB(db *sql.DB, driver string) *Provider {
	return &Provider{
		driver: driver,
		mode:   config.ConnModePooled,
		shared: sqlx.NewDb(db, driver),
	}
}

// Driver returns the database/sql driver name in use.
func (p *Provider) Driver() string {
	return p.driver
}

// Do runs fn with a database handle and releases the handle on every exit path.
func (p *Provider) Do(ctx context.Context, fn func(db *sqlx.DB) error) error {
	if p.mode == config.ConnModePooled {
		db, err := p.sharedDB(ctx)
		if err != nil {
			return err
		}
		return fn(db)
	}

	db, err := p.open(ctx, 1)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

// Ping checks that the store is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	return p.Do(ctx, func(db *sqlx.DB) error {
		return db.PingContext(ctx)
	})
}

// Close releases the shared handle, if the provider opened one.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shared == nil || !p.owned {
		return nil
	}
	err := p.shared.Close()
	p.shared = nil
	return err
}

func (p *Provider) sharedDB(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shared != nil {
		return p.shared, nil
	}

	maxOpen := p.maxOpen
	if p.driver == "sqlite" || maxOpen <= 0 {
		maxOpen = 1
	}
	db, err := p.open(ctx, maxOpen)
	if err != nil {
		return nil, err
	}
	p.shared = db
	return db, nil
}

func (p *Provider) open(ctx context.Context, maxOpen int) (*sqlx.DB, error) {
	if p.dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := sqlx.Open(p.driver, p.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxOpen, 5))

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
