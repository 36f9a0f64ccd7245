package listing

import (
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

const sampleListing = `{
	"kind": "Listing",
	"data": {
		"children": [
			{
				"kind": "t3",
				"data": {
					"name": "t3_abc",
					"domain": "i.redd.it",
					"url": "https://i.redd.it/x.jpg",
					"title": "cat",
					"preview": {
						"images": [
							{"source": {"url": "https://preview.redd.it/x.jpg?width=640&amp;crop=smart"}}
						]
					}
				}
			},
			{
				"kind": "t3",
				"data": {
					"name": "t3_def",
					"domain": "self.pics",
					"title": "text post with no url"
				}
			}
		]
	}
}`

func TestParse(t *testing.T) {
	assert := assert_.New(t)
	posts, err := Parse(strings.NewReader(sampleListing))
	assert.NoError(err)
	assert.Len(posts, 2)

	assert.Equal("i.redd.it", posts[0].Host)
	assert.Equal("https://i.redd.it/x.jpg", posts[0].MediaURL)
	assert.Equal("cat", posts[0].Title)
	assert.Equal("t3_abc", posts[0].ID().Unwrap())
	// RawMetadata carries the whole child untouched, preview included.
	assert.Contains(posts[0].RawMetadata, "preview")

	// Malformed posts come through as-is; dropping them is the
	// orchestrator's decision.
	assert.Equal("", posts[1].MediaURL)
	assert.Equal("self.pics", posts[1].Host)
}

func TestParseBadDocument(t *testing.T) {
	assert := assert_.New(t)
	_, err := Parse(strings.NewReader("not json"))
	assert.Error(err)

	posts, err := Parse(strings.NewReader(`{"data":{"children":[]}}`))
	assert.NoError(err)
	assert.Empty(posts)
}
