// Package redgifs handles redgifs.com, a slug host like gfycat.
package redgifs

import (
	"context"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
	"github.com/hfranklin/reddit-archiver/internal/lookup"
)

const Host = "redgifs.com"

func New(slugs lookup.SlugResolver) reddit_archiver.Resolver {
	return reddit_archiver.Resolver{
		Host: Host,
		Resolve: func(ctx context.Context, mediaURL string) generic.Option[reddit_archiver.ResolvedTarget] {
			u := slugs.ResolveSlug(ctx, mediaURL, lookup.KindRedgifs)
			if u.IsNone() {
				return generic.None[reddit_archiver.ResolvedTarget]()
			}
			return generic.Some(reddit_archiver.ResolvedTarget{FetchURL: u.Value})
		},
	}
}

func init() {
	reddit_archiver.DefaultResolverRegistry.MustAdd(New(lookup.NewClient()))
}
