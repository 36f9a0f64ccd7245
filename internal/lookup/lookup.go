// Package lookup resolves indirect media references: hosts like gfycat and
// redgifs expose only a short slug, and the true media URL has to be fetched
// out of band.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/hfranklin/reddit-archiver/generic"
)

type HostKind string

const (
	KindGfycat  HostKind = "gfycat"
	KindRedgifs HostKind = "redgifs"
)

const (
	defaultGfycatAPI  = "https://api.gfycat.com/v1/gfycats"
	defaultRedgifsAPI = "https://api.redgifs.com/v2/gifs"
)

// A SlugResolver turns an indirect reference URL into a direct media URL, or
// None if the slug cannot be looked up.
type SlugResolver interface {
	ResolveSlug(ctx context.Context, mediaURL string, kind HostKind) generic.Option[string]
}

type Client struct {
	// HTTP client for lookups; nil means http.DefaultClient.
	HTTP *http.Client
	// API base URL overrides, for tests.
	GfycatAPI  string
	RedgifsAPI string

	log *zap.SugaredLogger
}

func NewClient() *Client {
	return &Client{
		GfycatAPI:  defaultGfycatAPI,
		RedgifsAPI: defaultRedgifsAPI,
		log:        zap.S().Named("lookup"),
	}
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// ResolveSlug looks the slug up against the host's metadata API, falling back
// to scraping the reference page's OpenGraph tags when the API fails. Every
// failure mode is None; nothing propagates.
func (c *Client) ResolveSlug(ctx context.Context, mediaURL string, kind HostKind) generic.Option[string] {
	slug := slugFromURL(mediaURL)
	if slug == "" {
		return generic.None[string]()
	}
	var apiURL string
	switch kind {
	case KindGfycat:
		apiURL = fmt.Sprintf("%s/%s", c.GfycatAPI, slug)
	case KindRedgifs:
		apiURL = fmt.Sprintf("%s/%s", c.RedgifsAPI, slug)
	default:
		return generic.None[string]()
	}
	if u := c.fromAPI(ctx, apiURL, kind); u.IsSome() {
		return u
	}
	return c.fromOpenGraph(ctx, mediaURL)
}

// Both APIs wrap the item differently, but each ends at a direct mp4 URL.
type gfycatResponse struct {
	GfyItem struct {
		MP4URL string `json:"mp4Url"`
	} `json:"gfyItem"`
}

type redgifsResponse struct {
	Gif struct {
		URLs struct {
			HD string `json:"hd"`
			SD string `json:"sd"`
		} `json:"urls"`
	} `json:"gif"`
}

func (c *Client) fromAPI(ctx context.Context, apiURL string, kind HostKind) generic.Option[string] {
	body, err := c.get(ctx, apiURL)
	if err != nil {
		c.log.Debugf("api lookup failed for %s: %v", apiURL, err)
		return generic.None[string]()
	}
	defer body.Close()

	var mediaURL string
	switch kind {
	case KindGfycat:
		var resp gfycatResponse
		if err := json.NewDecoder(body).Decode(&resp); err != nil {
			c.log.Debugf("bad api response from %s: %v", apiURL, err)
			return generic.None[string]()
		}
		mediaURL = resp.GfyItem.MP4URL
	case KindRedgifs:
		var resp redgifsResponse
		if err := json.NewDecoder(body).Decode(&resp); err != nil {
			c.log.Debugf("bad api response from %s: %v", apiURL, err)
			return generic.None[string]()
		}
		mediaURL = resp.Gif.URLs.HD
		if mediaURL == "" {
			mediaURL = resp.Gif.URLs.SD
		}
	}
	if mediaURL == "" {
		return generic.None[string]()
	}
	return generic.Some(mediaURL)
}

// fromOpenGraph scrapes og:video / og:image out of the reference page itself.
// The slug APIs have a history of disappearing; the page markup is the next
// best source of the direct URL.
func (c *Client) fromOpenGraph(ctx context.Context, pageURL string) generic.Option[string] {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		c.log.Debugf("page lookup failed for %s: %v", pageURL, err)
		return generic.None[string]()
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		c.log.Debugf("failed to parse page %s: %v", pageURL, err)
		return generic.None[string]()
	}
	for _, property := range []string{"og:video", "og:image"} {
		selector := fmt.Sprintf(`meta[property=%q]`, property)
		if content, ok := doc.Find(selector).First().Attr("content"); ok && content != "" {
			return generic.Some(content)
		}
	}
	return generic.None[string]()
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// slugFromURL extracts the last path element of the reference URL, without
// any "-extra-words" suffix some gfycat links carry.
func slugFromURL(mediaURL string) string {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	elements := strings.Split(path, "/")
	slug := elements[len(elements)-1]
	return strings.SplitN(slug, "-", 2)[0]
}
