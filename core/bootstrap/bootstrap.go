// Package bootstrap initializes shared infrastructure before the bot runs.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	coreconfig "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/config"
	coredatabase "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/database"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
)

// Options control the bootstrap pipeline. The hooks default to the real
// implementations and exist for tests.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenDB     func(path string) (*sqlx.DB, error)
	Migrate    func(*sqlx.DB) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB      *sqlx.DB
	Catalog *catalog.Catalog
}

// Run initializes the logger, opens the favorites database, applies
// migrations, and loads the listings catalog. A missing listings file is
// not fatal; the bot starts with an empty catalog.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	cfg := opts.Config

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	openDB := opts.OpenDB
	if openDB == nil {
		openDB = coredatabase.Open
	}
	db, err := openDB(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	cat := catalog.New()
	if err := cat.Load(cfg.Catalog.ListingsFile); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: catalog load failed: %w", err)
	}

	return &Result{DB: db, Catalog: cat}, nil
}
