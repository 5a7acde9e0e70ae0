// Package readtime estimates how long a post takes to read, based on
// word count and heading density.
package readtime

import (
	"regexp"
	"strings"

	"blogkit/config"
	"blogkit/models"
)

// Built-in defaults, used when neither per-call options nor the
// application config override a value.
const (
	DefaultWordsPerMinute            = 225
	DefaultTime                      = 3
	DefaultMinTimeForLongArticle     = 5
	DefaultMinTimeForVeryLongArticle = 10
	DefaultLongArticleThreshold      = 1500
	DefaultVeryLongArticleThreshold  = 3000
	DefaultHeadingsWeight            = 5
)

var (
	htmlTag  = regexp.MustCompile(`<[^>]*>`)
	headings = regexp.MustCompile(`(?m)^#+\s+.+$`)
)

// Options tune the estimate. Zero values fall through to the application
// config, then to the built-in defaults, each field independently.
type Options struct {
	WordsPerMinute            int
	DefaultTime               int
	MinTimeForLongArticle     int
	MinTimeForVeryLongArticle int
	LongArticleThreshold      int
	VeryLongArticleThreshold  int
	HeadingsWeight            int
}

// resolve merges options over the config snapshot over the built-in
// defaults, field by field.
func resolve(opts Options, cfg config.ReadTimeConfig) Options {
	pick := func(option, configured, fallback int) int {
		if option > 0 {
			return option
		}
		if configured > 0 {
			return configured
		}
		return fallback
	}
	return Options{
		WordsPerMinute:            pick(opts.WordsPerMinute, cfg.WordsPerMinute, DefaultWordsPerMinute),
		DefaultTime:               pick(opts.DefaultTime, cfg.DefaultTime, DefaultTime),
		MinTimeForLongArticle:     pick(opts.MinTimeForLongArticle, cfg.MinTimeForLongArticle, DefaultMinTimeForLongArticle),
		MinTimeForVeryLongArticle: pick(opts.MinTimeForVeryLongArticle, cfg.MinTimeForVeryLongArticle, DefaultMinTimeForVeryLongArticle),
		LongArticleThreshold:      pick(opts.LongArticleThreshold, cfg.LongArticleThreshold, DefaultLongArticleThreshold),
		VeryLongArticleThreshold:  pick(opts.VeryLongArticleThreshold, cfg.VeryLongArticleThreshold, DefaultVeryLongArticleThreshold),
		HeadingsWeight:            pick(opts.HeadingsWeight, cfg.HeadingsWeight, DefaultHeadingsWeight),
	}
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Calculate estimates the reading time of content in whole minutes.
//
// HTML tags are stripped before counting words; markdown headings are
// counted on the original content and each headingsWeight of them adds a
// minute. Long and very long articles are floored at their configured
// minimums, and every result is floored at the default time.
func Calculate(content string, opts Options) int {
	cfg := resolve(opts, config.GetConfig().Posts.ReadTime)

	if strings.TrimSpace(content) == "" {
		return cfg.DefaultTime
	}

	clean := htmlTag.ReplaceAllString(content, "")
	wordCount := len(strings.Fields(clean))
	headingCount := len(headings.FindAllString(content, -1))

	minutes := ceilDiv(wordCount, cfg.WordsPerMinute)
	if headingCount > 0 {
		minutes += ceilDiv(headingCount, cfg.HeadingsWeight)
	}

	if wordCount > cfg.VeryLongArticleThreshold {
		minutes = max(minutes, cfg.MinTimeForVeryLongArticle)
	} else if wordCount > cfg.LongArticleThreshold {
		minutes = max(minutes, cfg.MinTimeForLongArticle)
	}

	return max(minutes, cfg.DefaultTime)
}

// ForPost resolves the reading time of a post.
//
// An explicit readTime in the frontmatter always wins. Otherwise the
// estimate comes from the full content when present, or from the excerpt
// tripled as a whole-article approximation. A zero-value post yields the
// default time; this never panics.
func ForPost(post *models.Post, opts Options) int {
	cfg := resolve(opts, config.GetConfig().Posts.ReadTime)

	if post == nil {
		return cfg.DefaultTime
	}

	if post.Metadata.ReadTime > 0 {
		return post.Metadata.ReadTime
	}

	if post.Content != "" {
		return Calculate(post.Content, opts)
	}

	if post.Metadata.Excerpt != "" {
		return max(Calculate(post.Metadata.Excerpt, opts)*3, cfg.DefaultTime)
	}

	return cfg.DefaultTime
}
