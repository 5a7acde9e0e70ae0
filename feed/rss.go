// Package feed renders a post collection into an RSS 2.0 document.
package feed

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blogkit/content"
	"blogkit/models"
	"blogkit/taxonomy"
)

// ErrSiteURLRequired is returned when feed generation is attempted
// without a site URL. This is a configuration error and fails loudly,
// unlike per-item problems which only drop the item.
var ErrSiteURLRequired = errors.New("siteUrl is required to generate RSS feed")

// Logger is the logging surface feed generation needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Options configure the generated feed channel.
type Options struct {
	// SiteURL is the absolute base URL of the site. Required.
	SiteURL         string
	BlogURI         string
	FeedTitle       string
	FeedDescription string
	FeedPath        string
	// MaxItems caps the number of items, 20 when unset.
	MaxItems int
	Language string
}

const descriptionBudget = 300

// GenerateRSS renders posts into an RSS 2.0 XML document.
//
// Posts are assumed pre-sorted newest first; only posts carrying both a
// title and a date become items, truncated to MaxItems. Every free-text
// field passes through XML entity escaping. A malformed post is logged
// and skipped; it never aborts the rest of the feed.
func GenerateRSS(posts []models.Post, opts Options, log Logger) (string, error) {
	if opts.SiteURL == "" {
		return "", ErrSiteURLRequired
	}

	if opts.BlogURI == "" {
		opts.BlogURI = "/blog"
	}
	if opts.FeedPath == "" {
		opts.FeedPath = opts.BlogURI + "/rss.xml"
	}
	if opts.MaxItems == 0 {
		opts.MaxItems = 20
	}
	if opts.Language == "" {
		opts.Language = "en"
	}

	log.Info("generating RSS feed", "posts", len(posts))

	baseURL := strings.TrimSuffix(opts.SiteURL, "/")

	var items []models.Post
	for _, post := range posts {
		if post.Metadata.Title == "" || post.Date == "" {
			continue
		}
		items = append(items, post)
		if len(items) == opts.MaxItems {
			break
		}
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:content="http://purl.org/rss/1.0/modules/content/">` + "\n")
	b.WriteString("<channel>\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", escapeXML(opts.FeedTitle))
	fmt.Fprintf(&b, "  <link>%s%s</link>\n", baseURL, opts.BlogURI)
	fmt.Fprintf(&b, "  <description>%s</description>\n", escapeXML(opts.FeedDescription))
	fmt.Fprintf(&b, "  <language>%s</language>\n", escapeXML(opts.Language))
	fmt.Fprintf(&b, "  <lastBuildDate>%s</lastBuildDate>\n", time.Now().UTC().Format(http.TimeFormat))
	b.WriteString("  <generator>blogkit RSS generator</generator>\n")
	fmt.Fprintf(&b, "  <atom:link href=\"%s%s\" rel=\"self\" type=\"application/rss+xml\" />\n", baseURL, opts.FeedPath)

	for _, post := range items {
		if err := writeItem(&b, post, baseURL, opts); err != nil {
			log.Warn("skipping RSS item", "path", post.Path, "error", err)
		}
	}

	b.WriteString("</channel>\n</rss>")
	return b.String(), nil
}

func writeItem(b *strings.Builder, post models.Post, baseURL string, opts Options) error {
	pubDate, ok := content.ParseDate(post.Date)
	if !ok {
		return fmt.Errorf("unparsable date %q", post.Date)
	}

	postURL := baseURL + opts.BlogURI + post.URLPath

	excerpt := content.PostExcerpt(post, descriptionBudget)
	if excerpt == "" {
		excerpt = "No description available"
	}

	author := post.Metadata.Author.Name
	if author == "" {
		author = opts.FeedTitle
	}

	b.WriteString("  <item>\n")
	fmt.Fprintf(b, "    <title>%s</title>\n", escapeXML(post.Metadata.Title))
	fmt.Fprintf(b, "    <link>%s</link>\n", postURL)
	fmt.Fprintf(b, "    <guid isPermaLink=\"true\">%s</guid>\n", postURL)
	fmt.Fprintf(b, "    <pubDate>%s</pubDate>\n", pubDate.UTC().Format(http.TimeFormat))
	if post.Metadata.Updated != "" {
		if updated, ok := content.ParseDate(post.Metadata.Updated); ok {
			fmt.Fprintf(b, "    <lastBuildDate>%s</lastBuildDate>\n", updated.UTC().Format(http.TimeFormat))
		}
	}
	fmt.Fprintf(b, "    <description>%s</description>\n", escapeXML(excerpt))
	fmt.Fprintf(b, "    <author>%s</author>\n", escapeXML(author))
	for _, category := range itemCategories(post) {
		fmt.Fprintf(b, "    <category>%s</category>\n", escapeXML(category))
	}
	b.WriteString("  </item>\n")
	return nil
}

// itemCategories collects the post's categories plus its tags (standard
// RSS practice), deduplicated in first-seen order.
func itemCategories(post models.Post) []string {
	seen := map[string]bool{}
	var out []string
	for _, term := range append(taxonomy.PostCategories(post), taxonomy.PostTags(post)...) {
		if seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML replaces the five predefined XML entities. Every free-text
// field must pass through here before insertion.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
