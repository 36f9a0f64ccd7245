// Package listing turns reddit listing JSON (the t3 "Link" things under
// data.children) into post references for the orchestrator. This is the
// file-based implementation of the enumeration collaborator; where the posts
// come from is of no concern to the download core.
package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
)

type document struct {
	Data struct {
		Children []struct {
			Data map[string]any `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Parse decodes one listing document. Posts with missing fields are kept
// as-is; the orchestrator is the one that decides malformed references are
// dropped.
func Parse(r io.Reader) ([]reddit_archiver.PostReference, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	posts := make([]reddit_archiver.PostReference, 0, len(doc.Data.Children))
	for _, child := range doc.Data.Children {
		posts = append(posts, reddit_archiver.PostReference{
			Host:        stringField(child.Data, "domain"),
			MediaURL:    stringField(child.Data, "url"),
			Title:       stringField(child.Data, "title"),
			RawMetadata: child.Data,
		})
	}
	return posts, nil
}

// ParseFile is Parse over the contents of a file.
func ParseFile(path string) ([]reddit_archiver.PostReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
