// vidqa-backfill processes a file of video URLs or ids through the full
// ingest pipeline and prints a per-video outcome plus a final summary.
// Exits non-zero when any video failed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vidqa/internal/modkit"
	"vidqa/internal/modkit/module"
	"vidqa/internal/modkit/repokit"
	"vidqa/internal/platform/config"
	"vidqa/internal/platform/logger"
	"vidqa/internal/platform/store"
	"vidqa/internal/services/ingest/domain"

	ingestmod "vidqa/internal/services/ingest/module"
)

func main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vidqa-backfill <urls-file>",
		Short:        "Process a file of video URLs through the Q&A extraction pipeline",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().Int("limit", 0, "Stop after N videos (0 = all)")
	root.Flags().Bool("dry-run", false, "List what would run without fetching or writing")
	root.Flags().Bool("skip-classification", false, "Leave questions unlabeled")
	root.Flags().Bool("skip-processed", true, "Skip videos already marked processed")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, path string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipCls, _ := cmd.Flags().GetBool("skip-classification")
	skipDone, _ := cmd.Flags().GetBool("skip-processed")

	refs, err := readRefs(path)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("%s holds no video references", path)
	}

	// flag wins over whatever the environment says
	if skipCls {
		_ = os.Setenv("CORE_INGEST_SKIP_CLASSIFICATION", "1")
	}

	rootCfg := config.New()
	pgCfg := rootCfg.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "vidqa-backfill",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	// fail fast if the database is not reachable
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{Cfg: rootCfg, PG: st.PG, Log: *l}
	ing := ingestmod.New(deps)
	module.Register(ing.Name(), ing.Ports())
	ports := ing.Ports().(ingestmod.Ports)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "processing %d videos from %s\n", len(refs), path)
	if dryRun {
		fmt.Fprintln(out, "dry run: nothing will be fetched or written")
	}

	stats := ports.Processor.RunBatch(ctx, refs, domain.BatchOptions{
		Limit:         limit,
		DryRun:        dryRun,
		SkipProcessed: skipDone,
	}, func(res domain.ProcessResult) {
		switch {
		case res.Success:
			fmt.Fprintf(out, "ok   %s  %q  questions=%d\n", res.YouTubeID, res.Title, res.QuestionsSaved)
		default:
			fmt.Fprintf(out, "FAIL %s  %s\n", res.YouTubeID, res.Error)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "     warning: %s\n", w)
		}
	})

	fmt.Fprintln(out)
	fmt.Fprintf(out, "total:      %d\n", stats.Total)
	fmt.Fprintf(out, "processed:  %d\n", stats.Processed)
	fmt.Fprintf(out, "successful: %d\n", stats.Successful)
	fmt.Fprintf(out, "failed:     %d\n", stats.Failed)
	fmt.Fprintf(out, "skipped:    %d\n", stats.Skipped)
	fmt.Fprintf(out, "questions:  %d\n", stats.TotalQuestions)

	if len(stats.Errors) > 0 {
		fmt.Fprintln(out, "\nerrors:")
		for _, e := range stats.Errors {
			fmt.Fprintf(out, "  %s: %s\n", e.YouTubeID, e.Message)
		}
		return fmt.Errorf("%d of %d videos failed", stats.Failed, stats.Processed)
	}
	return nil
}

// readRefs loads one video URL or id per line, skipping blanks and comments
func readRefs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var refs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	return refs, sc.Err()
}
