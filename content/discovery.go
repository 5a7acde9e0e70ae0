package content

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"blogkit/models"
)

// Resolver lazily loads the parsed frontmatter of one content file.
// Resolution is side-effect-free, so entries can be resolved in any
// order and in parallel.
type Resolver func(ctx context.Context) (models.PostMetadata, error)

// Entry is an opaque handle to one discovered content file.
type Entry struct {
	Path    string
	Resolve Resolver
}

// Discovery enumerates content files. The pipeline does not depend on
// any particular discovery mechanism; tests plug in fakes here.
type Discovery interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// BodyFetcher returns the raw text body of a content file with the
// frontmatter block already stripped. Local filesystem and network
// access modes are equivalent from the pipeline's perspective.
type BodyFetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// DirDiscovery walks a directory for markdown content files. Files
// whose name starts with an underscore are collaborator files
// (category descriptors), not posts.
type DirDiscovery struct {
	Dir string
}

func (d DirDiscovery) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(d.Dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), ".md") {
			return nil
		}
		if strings.HasPrefix(de.Name(), "_") {
			return nil
		}
		entries = append(entries, Entry{Path: path, Resolve: resolveFile(path)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func resolveFile(path string) Resolver {
	return func(ctx context.Context) (models.PostMetadata, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return models.PostMetadata{}, err
		}
		var meta models.PostMetadata
		if _, err := frontmatter.Parse(bytes.NewReader(data), &meta); err != nil {
			return models.PostMetadata{}, err
		}
		return meta, nil
	}
}

// stripFrontmatter drops the frontmatter block by splitting on the ---
// delimiter. Anything with fewer than three segments has no parseable
// body and yields an empty string.
func stripFrontmatter(raw string) string {
	parts := strings.Split(raw, "---")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[2:], "---")
}

// FileFetcher reads post bodies from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return stripFrontmatter(string(data)), nil
}

// HTTPFetcher reads post bodies over HTTP, for deployments where the
// content lives behind a static file server. BaseURL is prepended to
// the entry path.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := strings.TrimSuffix(f.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return stripFrontmatter(string(data)), nil
}
