package reddit_archiver

import (
	"html"

	"github.com/hfranklin/reddit-archiver/generic"
)

// ExtractPreviewURL projects the first preview image's source URL out of raw
// post metadata. It is a pure, read-only projection: no network or disk
// access. A missing preview section, or any shape other than
// preview.images[0].source.url, is None.
func ExtractPreviewURL(raw map[string]any) generic.Option[string] {
	preview, ok := raw["preview"].(map[string]any)
	if !ok {
		return generic.None[string]()
	}
	images, ok := preview["images"].([]any)
	if !ok || len(images) == 0 {
		return generic.None[string]()
	}
	first, ok := images[0].(map[string]any)
	if !ok {
		return generic.None[string]()
	}
	source, ok := first["source"].(map[string]any)
	if !ok {
		return generic.None[string]()
	}
	u, ok := source["url"].(string)
	if !ok || u == "" {
		return generic.None[string]()
	}
	// Preview URLs arrive HTML-entity escaped ("&amp;") for page embedding.
	return generic.Some(html.UnescapeString(u))
}
