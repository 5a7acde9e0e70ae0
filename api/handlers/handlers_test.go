package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogkit/api/handlers"
	"blogkit/cache"
	"blogkit/config"
	"blogkit/content"
	"blogkit/models"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type staticDiscovery []content.Entry

func (d staticDiscovery) Entries(ctx context.Context) ([]content.Entry, error) {
	return d, nil
}

type staticFetcher map[string]string

func (f staticFetcher) Fetch(ctx context.Context, path string) (string, error) {
	return f[path], nil
}

func entry(path string, meta models.PostMetadata) content.Entry {
	return content.Entry{
		Path: path,
		Resolve: func(ctx context.Context) (models.PostMetadata, error) {
			return meta, nil
		},
	}
}

func testService(bodies map[string]string, entries ...content.Entry) *content.Service {
	return content.NewService(config.Default(), staticDiscovery(entries),
		staticFetcher(bodies), cache.New(), nopLogger{})
}

func doJSON(t *testing.T, r http.Handler, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestListPostsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(nil,
		entry("posts/a.md", models.PostMetadata{Title: "A", Date: "2024-01-01", Categories: []string{"Tech"}, Tags: []string{"go"}}),
		entry("posts/b.md", models.PostMetadata{Title: "B", Date: "2024-02-01", Categories: []string{"Tech"}}),
	)

	r := gin.New()
	r.GET("/posts", handlers.ListPostsHandler(svc, config.Default()))

	code, body := doJSON(t, r, "/posts")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["totalPosts"])
	assert.Equal(t, []any{"Tech"}, body["categories"])
	assert.Equal(t, []any{"go"}, body["tags"])
}

func TestCategoryHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(nil,
		entry("posts/a.md", models.PostMetadata{Title: "A", Date: "2024-01-01", Categories: []string{"Tech"}}),
	)

	r := gin.New()
	r.GET("/category/:slug", handlers.CategoryHandler(svc, config.Default()))

	code, _ := doJSON(t, r, "/category/missing")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := doJSON(t, r, "/category/tech")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Tech", body["category"])
}

func TestTagHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(nil,
		entry("posts/a.md", models.PostMetadata{Title: "A", Date: "2024-01-01", Tags: []string{"Web Development"}}),
		entry("posts/b.md", models.PostMetadata{Title: "B", Date: "2024-02-01", Categories: []string{"Web Development"}}),
	)

	r := gin.New()
	r.GET("/tag/:slug", handlers.TagHandler(svc))

	code, body := doJSON(t, r, "/tag/web-development")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Web Development", body["tag"])

	// Only the tagged post matches; the category-only one is excluded.
	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	assert.Len(t, posts, 1)
}

func TestGetPostHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(
		map[string]string{"posts/hello.md": "# Hello\n\nWorld."},
		entry("posts/hello.md", models.PostMetadata{Title: "Hello", Date: "2024-03-05"}),
	)

	r := gin.New()
	r.GET("/post/:year/:month/:slug", handlers.GetPostHandler(svc, config.Default()))

	code, body := doJSON(t, r, "/post/2024/03/hello")
	assert.Equal(t, http.StatusOK, code)
	html, _ := body["html"].(string)
	assert.Contains(t, html, "Hello</h1>")

	code, _ = doJSON(t, r, "/post/2024/03/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRSSHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(nil,
		entry("posts/a.md", models.PostMetadata{Title: "A", Date: "2024-01-01"}),
	)

	cfg := config.Default()
	cfg.Feed.SiteURL = "https://example.com"

	r := gin.New()
	r.GET("/rss.xml", handlers.RSSHandler(svc, cfg, nopLogger{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, w.Body.String(), "<title>Blog</title>")
	assert.Contains(t, w.Body.String(), "<item>")
}

func TestRSSHandlerMissingSiteURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := testService(nil,
		entry("posts/a.md", models.PostMetadata{Title: "A", Date: "2024-01-01"}),
	)

	r := gin.New()
	r.GET("/rss.xml", handlers.RSSHandler(svc, config.Default(), nopLogger{}))

	code, _ := doJSON(t, r, "/rss.xml")
	assert.Equal(t, http.StatusInternalServerError, code)
}
