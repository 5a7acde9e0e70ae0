package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogkit/content"
)

const samplePost = `---
title: "Hello"
date: "2024-01-02"
tags:
  - go
  - web
---

# Hello

Body text here.
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDirDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.md", samplePost)
	writeFile(t, dir, "nested/deep.md", samplePost)
	writeFile(t, dir, "_categories.md", "---\ntech:\n  title: Tech\n---\n")
	writeFile(t, dir, "notes.txt", "not a post")

	entries, err := content.DirDiscovery{Dir: dir}.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2, "underscore files and non-markdown files are not posts")

	meta, err := entries[0].Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, "2024-01-02", meta.Date)
	assert.Equal(t, []string{"go", "web"}, meta.Tags)
}

func TestDirDiscoveryMissingDir(t *testing.T) {
	_, err := content.DirDiscovery{Dir: filepath.Join(t.TempDir(), "nope")}.Entries(context.Background())
	assert.Error(t, err)
}

func TestFileFetcherStripsFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello.md", samplePost)

	body, err := content.FileFetcher{}.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.NotContains(t, body, "title:")
	assert.Contains(t, body, "# Hello")
	assert.Contains(t, body, "Body text here.")
}

func TestFileFetcherNoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.md", "# Just a body\n")

	body, err := content.FileFetcher{}.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, body, "files without a frontmatter block have no parseable body")
}

func TestFileFetcherKeepsDelimitersInBody(t *testing.T) {
	dir := t.TempDir()
	raw := "---\ntitle: X\n---\nbefore\n---\nafter\n"
	path := writeFile(t, dir, "rule.md", raw)

	body, err := content.FileFetcher{}.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, body, "before")
	assert.Contains(t, body, "---")
	assert.Contains(t, body, "after")
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/hello.md", r.URL.Path)
		_, _ = w.Write([]byte(samplePost))
	}))
	defer srv.Close()

	body, err := content.HTTPFetcher{BaseURL: srv.URL}.Fetch(context.Background(), "posts/hello.md")
	require.NoError(t, err)
	assert.Contains(t, body, "# Hello")
	assert.NotContains(t, body, "title:")
}
