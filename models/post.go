package models

// Author is the byline attached to a post's frontmatter.
type Author struct {
	Name   string `yaml:"name" json:"name"`
	Avatar string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Image describes a frontmatter image reference (main image or thumbnail).
type Image struct {
	Src    string `yaml:"src" json:"src"`
	Alt    string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
}

// LocaleOverride is a partial metadata overlay for one language code.
// Zero-valued fields leave the base metadata untouched.
type LocaleOverride struct {
	Title      string   `yaml:"title,omitempty" json:"title,omitempty"`
	Slug       string   `yaml:"slug,omitempty" json:"slug,omitempty"`
	Category   string   `yaml:"category,omitempty" json:"category,omitempty"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
	Tags       []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Excerpt    string   `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
}

// PostMetadata is the parsed frontmatter of one content file.
//
// Date must parse to a valid calendar date or the entry is rejected
// during ingestion. Category is the singular legacy field; Categories
// wins when both are present.
type PostMetadata struct {
	Title      string                    `yaml:"title" json:"title"`
	Date       string                    `yaml:"date" json:"date"`
	Updated    string                    `yaml:"updated,omitempty" json:"updated,omitempty"`
	Slug       string                    `yaml:"slug,omitempty" json:"slug,omitempty"`
	Category   string                    `yaml:"category,omitempty" json:"category,omitempty"`
	Categories []string                  `yaml:"categories,omitempty" json:"categories,omitempty"`
	Tags       []string                  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Featured   bool                      `yaml:"featured,omitempty" json:"featured,omitempty"`
	Excerpt    string                    `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	Author     Author                    `yaml:"author,omitempty" json:"author,omitempty"`
	Image      *Image                    `yaml:"image,omitempty" json:"image,omitempty"`
	Thumbnail  *Image                    `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	ReadTime   int                       `yaml:"readTime,omitempty" json:"readTime,omitempty"`
	I18n       map[string]LocaleOverride `yaml:"i18n,omitempty" json:"i18n,omitempty"`
}

// Post is the canonical record the rest of the system consumes.
//
// Posts are created fresh on every cache-miss ingestion pass and are
// immutable afterwards; localized variants are produced by cloning the
// base, never by mutating it. Callers receiving cached posts must treat
// them as read-only.
type Post struct {
	Metadata PostMetadata `json:"metadata"`
	// Date is the ISO date string copied from the frontmatter.
	Date string `json:"date"`
	// URLPath is derived as /YYYY/MM/slug.
	URLPath string `json:"urlPath"`
	// Path is the resolved content-file path; it identifies the post
	// across localized variants.
	Path string `json:"path"`
	// Content holds the full body text, present only when explicitly
	// requested during ingestion.
	Content string `json:"content,omitempty"`
	// Lang is the resolved language code, "en" by default.
	Lang string `json:"lang"`
}

// ApplyOverride returns a copy of base with the non-zero fields of the
// override overlaid. The base is never modified; slices are copied so
// the clone shares no backing arrays with it.
func ApplyOverride(base PostMetadata, override LocaleOverride) PostMetadata {
	out := base
	out.Categories = append([]string(nil), base.Categories...)
	out.Tags = append([]string(nil), base.Tags...)

	if override.Title != "" {
		out.Title = override.Title
	}
	if override.Slug != "" {
		out.Slug = override.Slug
	}
	if override.Category != "" {
		out.Category = override.Category
	}
	if len(override.Categories) > 0 {
		out.Categories = append([]string(nil), override.Categories...)
	}
	if len(override.Tags) > 0 {
		out.Tags = append([]string(nil), override.Tags...)
	}
	if override.Excerpt != "" {
		out.Excerpt = override.Excerpt
	}
	return out
}
