package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestResolveSlugGfycatAPI(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/SomeClip", r.URL.Path)
		w.Write([]byte(`{"gfyItem":{"mp4Url":"https://giant.gfycat.com/SomeClip.mp4"}}`))
	}))
	defer server.Close()

	c := NewClient()
	c.GfycatAPI = server.URL
	u := c.ResolveSlug(context.Background(), "https://gfycat.com/someclip-extra-words", KindGfycat)
	assert.True(u.IsSome())
	assert.Equal("https://giant.gfycat.com/SomeClip.mp4", u.Value)
}

func TestResolveSlugRedgifsAPI(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gif":{"urls":{"hd":"","sd":"https://media.redgifs.com/Clip-mobile.mp4"}}}`))
	}))
	defer server.Close()

	c := NewClient()
	c.RedgifsAPI = server.URL
	u := c.ResolveSlug(context.Background(), "https://redgifs.com/watch/clip", KindRedgifs)
	assert.True(u.IsSome())
	assert.Equal("https://media.redgifs.com/Clip-mobile.mp4", u.Value)
}

func TestResolveSlugOpenGraphFallback(t *testing.T) {
	assert := assert_.New(t)
	// Page served from the same host the API 404s on, so the client falls
	// back to scraping OpenGraph tags.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/watch/clip", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:image" content="https://thumbs.example.com/clip.jpg"/>
			<meta property="og:video" content="https://media.example.com/clip.mp4"/>
		</head><body></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewClient()
	c.RedgifsAPI = server.URL + "/api"
	u := c.ResolveSlug(context.Background(), server.URL+"/watch/clip", KindRedgifs)
	assert.True(u.IsSome())
	assert.Equal("https://media.example.com/clip.mp4", u.Value)
}

func TestResolveSlugFailures(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient()
	c.GfycatAPI = server.URL
	c.RedgifsAPI = server.URL

	// Unknown slug: API and page both 404.
	u := c.ResolveSlug(context.Background(), server.URL+"/nope", KindGfycat)
	assert.True(u.IsNone())

	// No slug at all.
	u = c.ResolveSlug(context.Background(), server.URL+"/", KindGfycat)
	assert.True(u.IsNone())

	// Unrecognized host kind.
	u = c.ResolveSlug(context.Background(), server.URL+"/clip", HostKind("vimeo"))
	assert.True(u.IsNone())
}
