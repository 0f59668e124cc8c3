// @title         Repairlog API
// @version       0.1.0
// @description   Record keeping for repair sales with manual entry and eBay CSV import

package main

import (
	"context"

	"github.com/joho/godotenv"

	"repairlog/internal/modkit/repokit"
	"repairlog/internal/platform/config"
	"repairlog/internal/platform/logger"
	phttp "repairlog/internal/platform/net/http"
	"repairlog/internal/platform/store"

	"repairlog/internal/services/api"
)

func main() {
	// local dev convenience, missing .env is fine
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "repairlog-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast if the record store isn't reachable at boot
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
