// Package content turns raw markdown files into the normalized, sorted,
// cached post collection the rest of the application consumes.
package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"blogkit/cache"
	"blogkit/config"
	"blogkit/models"
	"blogkit/readtime"
)

// Logger is the minimal logging surface the pipeline needs; the
// application logger from the config package satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options select which view of the collection a caller wants.
type Options struct {
	// Lang requests localized content. Defaults to "en".
	Lang string
	// IncludeContent fetches the full markdown body for every post.
	IncludeContent bool
	// IncludeLocalizedVersions emits every localized variant of a post
	// alongside its base, instead of a single language's view.
	IncludeLocalizedVersions bool
}

func (o Options) canonical() Options {
	if o.Lang == "" {
		o.Lang = "en"
	}
	return o
}

// cacheKey is the single derivation point for the collection cache key.
// Every field of Options must appear here: a field missing from the key
// makes stale cross-option cache hits possible.
func (o Options) cacheKey() string {
	return fmt.Sprintf("lang=%s&content=%t&localized=%t",
		o.Lang, o.IncludeContent, o.IncludeLocalizedVersions)
}

// dateFormats are the accepted frontmatter date layouts, most specific
// first.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a frontmatter date string against the accepted
// layouts.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var titleCaser = cases.Title(language.English)

// titleFromFilename derives a display title when the frontmatter has
// none: "my-first-post" becomes "My First Post".
func titleFromFilename(name string) string {
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return titleCaser.String(name)
}

// Service is the ingestion pipeline with its collaborators injected
// explicitly: discovery, body fetch, the collection cache, and a logger.
type Service struct {
	cfg       config.AppConfig
	discovery Discovery
	fetcher   BodyFetcher
	store     *cache.Store
	log       Logger
}

func NewService(cfg config.AppConfig, discovery Discovery, fetcher BodyFetcher, store *cache.Store, log Logger) *Service {
	return &Service{
		cfg:       cfg,
		discovery: discovery,
		fetcher:   fetcher,
		store:     store,
		log:       log,
	}
}

// GetAllPosts returns the normalized post collection, newest first.
//
// Results are cached per options for the cache TTL; concurrent misses
// for the same options share a single ingestion pass. The returned
// slice is owned by the cache and must be treated as read-only.
func (s *Service) GetAllPosts(ctx context.Context, opts Options) ([]models.Post, error) {
	opts = opts.canonical()
	return s.store.Do(opts.cacheKey(), func() ([]models.Post, error) {
		return s.loadAll(ctx, opts)
	})
}

func (s *Service) loadAll(ctx context.Context, opts Options) ([]models.Post, error) {
	entries, err := s.discovery.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover content files: %w", err)
	}

	s.log.Info("loading blog posts", "entries", len(entries), "lang", opts.Lang)

	// Per-entry resolution is independent and side-effect-free, so the
	// entries resolve in parallel. Completion order is irrelevant: the
	// indexed results keep discovery order and the final slice is sorted
	// by date afterwards.
	results := make([][]models.Post, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			results[i] = s.normalize(gctx, entry, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var posts []models.Post
	for _, variants := range results {
		posts = append(posts, variants...)
	}

	// Newest first. Stable, so discovery order breaks date ties.
	sort.SliceStable(posts, func(i, j int) bool {
		ti, _ := ParseDate(posts[i].Date)
		tj, _ := ParseDate(posts[j].Date)
		return ti.After(tj)
	})

	s.log.Info("processed blog posts", "posts", len(posts))
	return posts, nil
}

// normalize turns one discovered entry into its post variants. A bad
// entry degrades to nothing rather than failing the batch: one broken
// file must never take down the whole collection.
func (s *Service) normalize(ctx context.Context, entry Entry, opts Options) []models.Post {
	meta, err := entry.Resolve(ctx)
	if err != nil {
		s.log.Warn("skipping post, resolution failed", "path", entry.Path, "error", err)
		return nil
	}

	if meta.Date == "" {
		s.log.Warn("skipping post, missing date", "path", entry.Path)
		return nil
	}
	postDate, ok := ParseDate(meta.Date)
	if !ok {
		s.log.Warn("skipping post, invalid date", "path", entry.Path, "date", meta.Date)
		return nil
	}

	filename := strings.TrimSuffix(filepath.Base(entry.Path), filepath.Ext(entry.Path))
	urlSlug := meta.Slug
	if urlSlug == "" {
		urlSlug = filename
	}
	urlPath := fmt.Sprintf("/%04d/%02d/%s", postDate.Year(), int(postDate.Month()), urlSlug)

	if meta.Title == "" {
		meta.Title = titleFromFilename(filename)
	}

	content := ""
	if opts.IncludeContent {
		content, err = s.fetcher.Fetch(ctx, entry.Path)
		if err != nil {
			s.log.Warn("could not fetch post body", "path", entry.Path, "error", err)
			content = ""
		}
	}

	// Backfill the read time onto the metadata so repeated reads within
	// this pass are consistent. An explicit frontmatter value wins.
	if meta.ReadTime == 0 {
		meta.ReadTime = readtime.ForPost(&models.Post{
			Metadata: meta,
			Content:  content,
		}, readtime.Options{})
	}

	base := models.Post{
		Metadata: meta,
		Date:     meta.Date,
		URLPath:  urlPath,
		Path:     entry.Path,
		Content:  content,
		Lang:     "en",
	}

	switch {
	case opts.IncludeLocalizedVersions && len(meta.I18n) > 0:
		// Base post plus one cloned-and-overridden sibling per language.
		variants := []models.Post{base}
		for _, lang := range sortedKeys(meta.I18n) {
			localized := base
			localized.Metadata = models.ApplyOverride(meta, meta.I18n[lang])
			localized.Lang = lang
			variants = append(variants, localized)
		}
		return variants

	case opts.Lang != "en":
		override, ok := meta.I18n[opts.Lang]
		if !ok {
			return []models.Post{base}
		}
		localized := base
		localized.Metadata = models.ApplyOverride(meta, override)
		localized.Lang = opts.Lang
		return []models.Post{localized}

	default:
		return []models.Post{base}
	}
}

func sortedKeys(m map[string]models.LocaleOverride) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
