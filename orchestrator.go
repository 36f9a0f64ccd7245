package reddit_archiver

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
)

var ErrNoQuotaCounter = errors.New("config has no quota counter")

// The Orchestrator sequences resolution, transfer, validation and fallback
// for one post at a time. Each Process call is internally sequential; any
// number of workers may call Process concurrently, sharing only the quota
// counter.
type Orchestrator struct {
	config Config
	log    *zap.SugaredLogger
}

// NewOrchestrator builds an Orchestrator, filling unset collaborators with
// defaults and creating the target directory (parents included, idempotent).
func NewOrchestrator(config Config) (*Orchestrator, error) {
	if config.Quota == nil {
		return nil, ErrNoQuotaCounter
	}
	if config.Registry == nil {
		config.Registry = &DefaultResolverRegistry
	}
	if config.Fetcher == nil {
		config.Fetcher = NewHTTPFetcher()
	}
	if config.TargetFileTemplate == nil {
		config.TargetFileTemplate = defaultTargetFileTemplate
	}
	if err := os.MkdirAll(config.TargetDir, 0755); err != nil {
		return nil, err
	}
	return &Orchestrator{
		config: config,
		log:    zap.S().Named("orchestrator"),
	}, nil
}

// Process downloads the media for one post.
//
// The quota check here and the RecordAttempt at the end are two separate
// operations on purpose: several workers can pass the check before any of
// them records a success, so the success count may transiently overshoot
// MaxDownloads by up to (workers - 1). That soft cap is part of the contract;
// making it strict would require a combined check-and-reserve operation on
// the counter.
//
// Process never panics and never returns an error; every failure mode is
// logged and folded into the outcome.
func (o *Orchestrator) Process(ctx context.Context, post PostReference) (outcome DownloadOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Errorw("panic while processing post", "title", post.Title, "panic", r)
			outcome = failed()
		}
	}()

	if o.config.Quota.Count() >= o.config.MaxDownloads {
		return skipped()
	}

	if post.Host == "" || post.MediaURL == "" {
		// Abandoned without touching the counter, so it never counts against
		// the quota. See DESIGN.md for why this possible undercount stays.
		o.log.Warnw("dropping malformed post reference", "title", post.Title)
		return failed()
	}

	path, ok := o.tryPrimary(ctx, post)
	if !ok {
		path, ok = o.tryFallback(ctx, post)
	}
	o.config.Quota.RecordAttempt(ok)
	if !ok {
		o.log.Infow("post failed", "host", post.Host, "title", post.Title)
		return failed()
	}
	o.log.Infow("post downloaded", "host", post.Host, "path", path)
	return succeeded(path)
}

func (o *Orchestrator) tryPrimary(ctx context.Context, post PostReference) (string, bool) {
	target := o.config.Registry.Resolve(ctx, post.Host, post.MediaURL)
	if target.IsNone() {
		o.log.Debugw("reference not resolvable", "host", post.Host, "url", post.MediaURL)
		return "", false
	}
	path, err := o.config.TargetPath(post.Title, target.Value.FetchURL)
	if err != nil {
		o.log.Warnw("cannot build target path", "url", target.Value.FetchURL, "error", err)
		return "", false
	}
	if err := o.config.Fetcher.Fetch(ctx, target.Value.FetchURL, path); err != nil {
		o.log.Warnw("primary fetch failed", "url", target.Value.FetchURL, "error", err)
		return "", false
	}
	return path, Validate(path)
}

func (o *Orchestrator) tryFallback(ctx context.Context, post PostReference) (string, bool) {
	previewURL := ExtractPreviewURL(post.RawMetadata)
	if previewURL.IsNone() {
		return "", false
	}
	path, err := o.config.TargetPathSuffix(post.Title, PreviewSuffix)
	if err != nil {
		o.log.Warnw("cannot build fallback target path", "title", post.Title, "error", err)
		return "", false
	}
	if err := o.config.Fetcher.Fetch(ctx, previewURL.Value, path); err != nil {
		o.log.Warnw("fallback fetch failed", "url", previewURL.Value, "error", err)
		return "", false
	}
	return path, Validate(path)
}
