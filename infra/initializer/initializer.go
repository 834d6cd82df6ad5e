// Package initializer turns loaded configuration into a wired application
// context: logger, database connection, document store, and services.
package initializer

import (
	"fmt"

	"github.com/walletd/walletcore/infra/docstore"
	"github.com/walletd/walletcore/pkg/app"
	"github.com/walletd/walletcore/pkg/config"
)

// Init opens the document database and constructs the application context.
func Init(cfg *config.App) (*app.App, error) {
	logger := SetupLogger(cfg.Log)

	db, err := docstore.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connect document database: %w", err)
	}
	store, err := docstore.New(db)
	if err != nil {
		return nil, fmt.Errorf("initialize document store: %w", err)
	}

	closeFn := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return app.New(cfg, logger, store, closeFn), nil
}
