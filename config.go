package reddit_archiver

import (
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hfranklin/reddit-archiver/internal/quota"
	"github.com/hfranklin/reddit-archiver/util"
)

// PreviewSuffix is the fixed extension used for fallback preview downloads.
const PreviewSuffix = ".jpg"

// Config carries everything an Orchestrator needs: the download directory,
// filename construction rules, the download quota, and its collaborators.
type Config struct {
	// TargetDir is the directory all media files are downloaded into. It is
	// created (parents included) when the Orchestrator is built.
	TargetDir string
	// TargetFileTemplate renders the target filename from a sanitized post
	// title and the filename portion of the download URL. The same inputs
	// always render the same filename, so repeated runs skip existing files.
	TargetFileTemplate *template.Template
	// MaxDownloads is the maximum number of successful downloads for the
	// whole batch run, enforced approximately across workers via Quota.
	MaxDownloads int
	// Registry selects the per-host resolution strategy; nil means
	// DefaultResolverRegistry.
	Registry *ResolverRegistry
	// Fetcher performs the streamed transfers; nil means NewHTTPFetcher().
	Fetcher StreamFetcher
	// Quota is the success counter shared by every concurrent worker.
	Quota quota.Counter
}

var defaultTargetFileTemplate = template.Must(template.New("target_file").Parse("{{.Title}}_{{.Filename}}"))

var DefaultConfig = Config{
	TargetDir:          "downloads",
	TargetFileTemplate: defaultTargetFileTemplate,
	MaxDownloads:       25,
}

type targetFileTemplateArgs struct {
	Title    string
	Filename string
}

// TargetPath builds the deterministic destination path for a download URL.
func (c *Config) TargetPath(title string, downloadURL string) (string, error) {
	filename, err := util.FilenameFromURLString(downloadURL)
	if err != nil {
		return "", err
	}
	return c.renderTargetPath(title, filename)
}

// TargetPathSuffix builds the destination path for a fallback download, where
// only the file extension is known up front.
func (c *Config) TargetPathSuffix(title string, suffix string) (string, error) {
	return c.renderTargetPath(title, "preview"+suffix)
}

func (c *Config) renderTargetPath(title string, filename string) (string, error) {
	tmpl := c.TargetFileTemplate
	if tmpl == nil {
		tmpl = defaultTargetFileTemplate
	}
	args := targetFileTemplateArgs{
		Title:    util.SanitizeFilename(title),
		Filename: filename,
	}
	builder := strings.Builder{}
	if err := tmpl.Execute(&builder, &args); err != nil {
		return "", err
	}
	return filepath.Join(c.TargetDir, builder.String()), nil
}
