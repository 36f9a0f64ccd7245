// Package batch fans a set of post references out over a pool of workers,
// each invoking the orchestrator once per post. Workers share nothing but the
// quota counter inside the orchestrator; coordination here is only the job
// channel and the result tally.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
	"github.com/hfranklin/reddit-archiver/internal/history"
	"github.com/hfranklin/reddit-archiver/internal/sync_"
)

const DefaultWorkers = 4

// A Processor is the per-post unit of work; *reddit_archiver.Orchestrator is
// the real one.
type Processor interface {
	Process(ctx context.Context, post reddit_archiver.PostReference) reddit_archiver.DownloadOutcome
}

// A SeenStore remembers which posts were already archived by previous runs;
// quota.Bolt provides one.
type SeenStore interface {
	Seen(id string) bool
	MarkSeen(id string) error
}

type Config struct {
	Workers   int
	Processor Processor
	// History, if set, gets one record per processed post.
	History *history.Store
	// Seen, if set, skips posts archived by previous runs and records new
	// successes.
	Seen SeenStore
}

type Summary struct {
	Processed int
	Succeeded int
	Skipped   int
	Failed    int
}

type Runner struct {
	config Config
	id     string
	log    *zap.SugaredLogger
}

func New(config Config) *Runner {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	id := uuid.NewString()
	return &Runner{
		config: config,
		id:     id,
		log:    zap.S().Named("batch").With("run_id", id),
	}
}

func (r *Runner) ID() string {
	return r.id
}

// Run processes every post and returns a tally of outcomes. The returned
// error aggregates bookkeeping failures (history writes, seen-store writes);
// download failures are not errors, they are part of the Summary.
func (r *Runner) Run(ctx context.Context, posts []reddit_archiver.PostReference) (Summary, error) {
	jobs := make(chan reddit_archiver.PostReference)
	outcomes := make(chan reddit_archiver.DownloadOutcome)
	errs := sync_.NewMutexed((*multierror.Error)(nil))

	go func() {
		defer close(jobs)
		dedupe := generic.NewSet[string]()
		for _, post := range posts {
			if id := post.ID(); id.IsSome() {
				if !dedupe.Add(id.Value) {
					continue
				}
				if r.config.Seen != nil && r.config.Seen.Seen(id.Value) {
					r.log.Debugw("post already archived", "post_id", id.Value)
					continue
				}
			}
			select {
			case jobs <- post:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg := sync.WaitGroup{}
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				outcome := r.config.Processor.Process(ctx, post)
				if err := r.bookkeep(post, outcome); err != nil {
					_ = errs.Locked(func(merr **multierror.Error) error {
						*merr = multierror.Append(*merr, err)
						return nil
					})
				}
				outcomes <- outcome
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	summary := Summary{}
	for outcome := range outcomes {
		summary.Processed++
		switch outcome.Status {
		case reddit_archiver.OutcomeSucceeded:
			summary.Succeeded++
		case reddit_archiver.OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	r.log.Infow("run finished",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, errs.Get().ErrorOrNil()
}

func (r *Runner) bookkeep(post reddit_archiver.PostReference, outcome reddit_archiver.DownloadOutcome) error {
	var result *multierror.Error
	if r.config.History != nil && outcome.Status != reddit_archiver.OutcomeSkipped {
		if err := r.config.History.RecordOutcome(post, outcome); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if r.config.Seen != nil && outcome.Succeeded() {
		if id := post.ID(); id.IsSome() {
			if err := r.config.Seen.MarkSeen(id.Value); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}
