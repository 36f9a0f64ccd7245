package reddit_archiver

import (
	"github.com/hfranklin/reddit-archiver/generic"
)

// A PostReference identifies one media post to be archived. It is the unit of
// work handed to Orchestrator.Process and is never mutated after creation.
type PostReference struct {
	// Host is the domain the media reference originates from (e.g.
	// "i.redd.it"), used to select a resolution strategy.
	Host string
	// MediaURL is the primary media URL, which may be indirect (a slug page
	// rather than the media file itself).
	MediaURL string
	Title    string
	// RawMetadata is the post metadata exactly as received from the listing,
	// which may carry a nested preview image URL used as a fallback source.
	RawMetadata map[string]any
}

// ID returns the site-wide post identifier from the raw metadata, if present.
func (p PostReference) ID() generic.Option[string] {
	for _, key := range []string{"name", "id"} {
		if id, ok := p.RawMetadata[key].(string); ok && id != "" {
			return generic.Some(id)
		}
	}
	return generic.None[string]()
}

type OutcomeStatus string

const (
	// OutcomeSkipped means the post was not attempted because the download
	// quota was already met.
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
)

// A DownloadOutcome is produced exactly once per PostReference and never
// mutated after return.
type DownloadOutcome struct {
	Status OutcomeStatus
	// LocalPath is the downloaded file, present only when Status is
	// OutcomeSucceeded.
	LocalPath generic.Option[string]
}

func (o DownloadOutcome) Succeeded() bool {
	return o.Status == OutcomeSucceeded
}

func skipped() DownloadOutcome {
	return DownloadOutcome{Status: OutcomeSkipped, LocalPath: generic.None[string]()}
}

func succeeded(path string) DownloadOutcome {
	return DownloadOutcome{Status: OutcomeSucceeded, LocalPath: generic.Some(path)}
}

func failed() DownloadOutcome {
	return DownloadOutcome{Status: OutcomeFailed, LocalPath: generic.None[string]()}
}
