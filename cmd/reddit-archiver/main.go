package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/async"
	"github.com/hfranklin/reddit-archiver/internal/batch"
	"github.com/hfranklin/reddit-archiver/internal/history"
	"github.com/hfranklin/reddit-archiver/internal/listing"
	"github.com/hfranklin/reddit-archiver/internal/quota"
	_ "github.com/hfranklin/reddit-archiver/resolvers/all"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)

	// A missing .env is fine; it only supplies flag defaults.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Name:      "reddit-archiver",
		Usage:     "download the media of every post in one or more reddit listing JSON files",
		ArgsUsage: "LISTING [LISTING...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Value:   "downloads",
				Usage:   "save downloaded media to `DIR`",
				EnvVars: []string{"REDDIT_ARCHIVER_TARGET"},
			},
			&cli.IntFlag{
				Name:    "max-downloads",
				Value:   25,
				Usage:   "stop after `N` successful downloads",
				EnvVars: []string{"REDDIT_ARCHIVER_MAX_DOWNLOADS"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Value:   batch.DefaultWorkers,
				Usage:   "number of concurrent download workers",
				EnvVars: []string{"REDDIT_ARCHIVER_WORKERS"},
			},
			&cli.StringFlag{
				Name:    "quota-db",
				Usage:   "persist the quota and the seen-post index in bbolt `FILE` (default: in-memory, with progress bar)",
				EnvVars: []string{"REDDIT_ARCHIVER_QUOTA_DB"},
			},
			&cli.StringFlag{
				Name:    "history-db",
				Usage:   "record every outcome in sqlite `FILE`",
				EnvVars: []string{"REDDIT_ARCHIVER_HISTORY_DB"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no listing files given")
			}
			return run(ctx, logger, c)
		},
		HideHelpCommand: true,
	}

	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		logger.Error(ctx.Err().Error())
		stop()
	}
}

func run(ctx context.Context, logger *zap.Logger, c *cli.Context) (err error) {
	var closers *multierror.Error
	defer func() {
		if closeErr := closers.ErrorOrNil(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var posts []reddit_archiver.PostReference
	for _, path := range c.Args().Slice() {
		parsed, err := listing.ParseFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		posts = append(posts, parsed...)
	}
	logger.Sugar().Infof("loaded %d posts from %d listing(s)", len(posts), c.NArg())

	var counter quota.Counter
	var seen batch.SeenStore
	if path := c.String("quota-db"); path != "" {
		bolt, err := quota.OpenBolt(path)
		if err != nil {
			return fmt.Errorf("failed to open quota database: %w", err)
		}
		defer func() { closers = multierror.Append(closers, bolt.Close()) }()
		counter = bolt
		seen = bolt
	} else {
		counter = quota.NewMemoryBar(c.Int("max-downloads"))
	}

	var store *history.Store
	if path := c.String("history-db"); path != "" {
		if store, err = history.Open(path, logger); err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() { closers = multierror.Append(closers, store.Close()) }()
	}

	orchestrator, err := reddit_archiver.NewOrchestrator(reddit_archiver.Config{
		TargetDir:    c.String("target"),
		MaxDownloads: c.Int("max-downloads"),
		Quota:        counter,
	})
	if err != nil {
		return err
	}

	runner := batch.New(batch.Config{
		Workers:   c.Int("workers"),
		Processor: orchestrator,
		History:   store,
		Seen:      seen,
	})
	summary, err := runner.Run(ctx, posts)
	if err != nil {
		return err
	}
	logger.Sugar().Infof("archived %d of %d posts (%d failed, %d skipped by quota)",
		summary.Succeeded, summary.Processed, summary.Failed, summary.Skipped)
	return nil
}
