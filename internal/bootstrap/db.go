package bootstrap

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore"
)

type DBOptions struct {
	Config *config.DatabaseConfig
	PingTO time.Duration
}

// OpenDB builds the connection provider and probes the store once. An
// unreachable or unconfigured store is logged, not fatal: the first
// operation that needs it reports the failure.
func OpenDB(ctx context.Context, opt DBOptions) *sqlstore.Provider {
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	p := sqlstore.NewProvider(opt.Config)

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	switch err := p.Ping(pctx); {
	case errors.Is(err, sqlstore.ErrMissingDSN):
		log.Printf("[warn] DATABASE_URL is not set; trip storage will fail until it is configured")
	case err != nil:
		log.Printf("[warn] db ping: %v", err)
	default:
		log.Printf("[info] db reachable driver=%s mode=%s", opt.Config.Driver, opt.Config.ConnMode)
	}

	return p
}
