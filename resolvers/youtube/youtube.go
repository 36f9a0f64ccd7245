// Package youtube resolves youtube.com / youtu.be post links to a direct
// stream URL for the best available combined format.
package youtube

import (
	"context"

	"github.com/kkdai/youtube/v2"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
	"github.com/hfranklin/reddit-archiver/generic"
)

var Hosts = []string{"youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be"}

func New(host string) reddit_archiver.Resolver {
	return reddit_archiver.Resolver{Host: host, Resolve: Resolve}
}

func Resolve(ctx context.Context, mediaURL string) generic.Option[reddit_archiver.ResolvedTarget] {
	none := generic.None[reddit_archiver.ResolvedTarget]()
	client := youtube.Client{}
	video, err := client.GetVideoContext(ctx, mediaURL)
	if err != nil {
		return none
	}
	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return none
	}
	streamURL, err := client.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return none
	}
	return generic.Some(reddit_archiver.ResolvedTarget{FetchURL: streamURL})
}

func init() {
	for _, host := range Hosts {
		reddit_archiver.DefaultResolverRegistry.MustAdd(New(host))
	}
}
