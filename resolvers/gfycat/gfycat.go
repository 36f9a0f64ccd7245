// Package gfycat handles gfycat.com, whose post URLs carry only a slug; the
// direct mp4 URL comes from an out-of-band metadata lookup.
package gfycat

import (
	"context"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
	"github.com/hfranklin/reddit-archiver/internal/lookup"
)

const Host = "gfycat.com"

func New(slugs lookup.SlugResolver) reddit_archiver.Resolver {
	return reddit_archiver.Resolver{
		Host: Host,
		Resolve: func(ctx context.Context, mediaURL string) generic.Option[reddit_archiver.ResolvedTarget] {
			u := slugs.ResolveSlug(ctx, mediaURL, lookup.KindGfycat)
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
