// Package imgur handles i.imgur.com. Most links are direct media; ".gifv"
// links are an HTML wrapper around an mp4 with the same name, so the
// extension is rewritten to the directly playable one.
package imgur

import (
	"context"
	"strings"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
)

const Host = "i.imgur.com"

func New() reddit_archiver.Resolver {
	return reddit_archiver.Resolver{Host: Host, Resolve: Resolve}
}

func Resolve(_ context.Context, mediaURL string) generic.Option[reddit_archiver.ResolvedTarget] {
	if mediaURL == "" {
		return generic.None[reddit_archiver.ResolvedTarget]()
	}
	if strings.Contains(mediaURL, ".gifv") {
		mediaURL = strings.Replace(mediaURL, ".gifv", ".mp4", 1)
	}
	return generic.Some(reddit_archiver.ResolvedTarget{FetchURL: mediaURL})
}

func init() {
	reddit_archiver.DefaultResolverRegistry.MustAdd(New())
}
