package reddit_archiver

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func previewMetadata(url string) map[string]any {
	return map[string]any{
		"preview": map[string]any{
			"images": []any{
				map[string]any{
					"source": map[string]any{"url": url},
				},
			},
		},
	}
}

func TestExtractPreviewURL(t *testing.T) {
	assert := assert_.New(t)

	u := ExtractPreviewURL(previewMetadata("https://preview.redd.it/x.jpg"))
	assert.True(u.IsSome())
	assert.Equal("https://preview.redd.it/x.jpg", u.Value)
}

func TestExtractPreviewURLUnescapesEntities(t *testing.T) {
	assert := assert_.New(t)

	u := ExtractPreviewURL(previewMetadata("https://preview.redd.it/x.jpg?width=640&amp;crop=smart"))
	assert.True(u.IsSome())
	assert.Equal("https://preview.redd.it/x.jpg?width=640&crop=smart", u.Value)
}

func TestExtractPreviewURLMalformed(t *testing.T) {
	assert := assert_.New(t)

	for name, raw := range map[string]map[string]any{
		"no metadata":      {},
		"no preview":       {"title": "cat"},
		"preview not map":  {"preview": "yes"},
		"no images":        {"preview": map[string]any{}},
		"empty images":     {"preview": map[string]any{"images": []any{}}},
		"image not map":    {"preview": map[string]any{"images": []any{"x"}}},
		"no source":        {"preview": map[string]any{"images": []any{map[string]any{}}}},
		"source not map":   {"preview": map[string]any{"images": []any{map[string]any{"source": 1}}}},
		"url not a string": {"preview": map[string]any{"images": []any{map[string]any{"source": map[string]any{"url": 1}}}}},
		"url empty":        previewMetadata(""),
	} {
		u := ExtractPreviewURL(raw)
		assert.True(u.IsNone(), name)
	}
}
