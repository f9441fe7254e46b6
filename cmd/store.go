package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/store"
)

// openStore opens the configured persistence backend and runs migrations.
// The caller owns Close.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "open store: migrate")
	}
	return st, nil
}
