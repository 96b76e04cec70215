package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vidqa/internal/modkit"
	"vidqa/internal/modkit/module"
	"vidqa/internal/modkit/repokit"
	"vidqa/internal/platform/config"
	"vidqa/internal/platform/logger"
	"vidqa/internal/platform/store"

	ingestmod "vidqa/internal/services/ingest/module"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	wkCfg := root.Prefix("CORE_WORKER_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "vidqa-worker",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast if the database is not reachable
	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	ing := ingestmod.New(deps)
	module.Register(ing.Name(), ing.Ports())
	ports := ing.Ports().(ingestmod.Ports)

	idle := wkCfg.MayDuration("IDLE_SLEEP", 5*time.Second)
	errPause := wkCfg.MayDuration("ERROR_SLEEP", 10*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l.Info().Dur("idle_sleep", idle).Msg("worker draining ingest queue")

	for {
		if ctx.Err() != nil {
			l.Info().Msg("worker stopping")
			return
		}

		res, err := ports.Queue.RunNext(ctx)
		switch {
		case err != nil:
			l.Error().Err(err).Msg("queue run failed")
			sleep(ctx, errPause)
		case res == nil:
			// queue empty
			sleep(ctx, idle)
		case res.Success:
			l.Info().
				Str("youtube_id", res.YouTubeID).
				Int("found", res.QuestionsFound).
				Int("saved", res.QuestionsSaved).
				Msg("job done")
		default:
			l.Warn().
				Str("youtube_id", res.YouTubeID).
				Str("error", res.Error).
				Msg("job failed")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
