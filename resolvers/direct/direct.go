// Package direct handles hosts whose post URL is already the media file
// itself, so resolution is the identity.
package direct

import (
	"context"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
)

func New(host string) reddit_archiver.Resolver {
	return reddit_archiver.Resolver{Host: host, Resolve: Resolve}
}

func Resolve(_ context.Context, mediaURL string) generic.Option[reddit_archiver.ResolvedTarget] {
	if mediaURL == "" {
		return generic.None[reddit_archiver.ResolvedTarget]()
	}
	return generic.Some(reddit_archiver.ResolvedTarget{FetchURL: mediaURL})
}

func init() {
	reddit_archiver.DefaultResolverRegistry.MustAdd(New("i.redd.it"))
}
