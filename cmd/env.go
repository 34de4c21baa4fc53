package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/ingest"
	"github.com/sells-group/procure-cli/internal/llm"
	"github.com/sells-group/procure-cli/internal/store"
)

// initStore opens the Postgres pool. Callers should defer Close.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// initAsk loads route profiles and builds the ask service. A nil
// completer is allowed when only prompts are prepared.
func initAsk(ctx context.Context, q ask.Querier, withLLM bool) (*ask.Service, error) {
	profiles, err := ask.LoadProfiles(cfg.Ask.ProfilesPath)
	if err != nil {
		return nil, eris.Wrap(err, "load ask profiles")
	}

	var completer ask.Completer
	if withLLM {
		completer, err = llm.New(ctx, cfg)
		if err != nil {
			return nil, eris.Wrap(err, "init llm")
		}
	}

	zap.L().Info("ask service ready",
		zap.Strings("profiles", profiles.Names()),
		zap.String("llm_provider", cfg.LLM.Provider),
	)
	return ask.New(q, completer, profiles), nil
}

// initIngest builds the document extraction and storage service.
func initIngest(ctx context.Context, w ingest.Writer) (*ingest.Service, error) {
	ex, err := extract.New(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "init extractor")
	}
	zap.L().Info("document extraction ready", zap.String("provider", cfg.Extract.Provider))
	return ingest.New(ex, w), nil
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}
