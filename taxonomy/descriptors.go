package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"blogkit/models"
)

var (
	frontmatterBlock = regexp.MustCompile(`(?s)^---\n(.*?)\n---`)
	categoryLine     = regexp.MustCompile(`^([a-z0-9-]+):\s*$`)
	quotedPropLine   = regexp.MustCompile(`^\s\s([a-z-]+):\s*"(.+)"$`)
	propLine         = regexp.MustCompile(`^\s\s([a-z-]+):\s*(.+)$`)
)

// ParseCategoryDescriptions parses the constrained descriptor format of
// a _categories.md file: a frontmatter block where top-level `key:`
// lines introduce a category and two-space-indented `prop: value` lines
// attach properties. This is deliberately not general YAML; unrecognized
// indentation and multi-line values are silently ignored.
func ParseCategoryDescriptions(fileContent string) map[string]models.CategoryDescriptor {
	out := map[string]models.CategoryDescriptor{}

	block := frontmatterBlock.FindStringSubmatch(fileContent)
	if block == nil {
		return out
	}

	current := ""
	for _, line := range strings.Split(block[1], "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := categoryLine.FindStringSubmatch(line); m != nil {
			current = m[1]
			out[current] = models.CategoryDescriptor{}
			continue
		}

		if current == "" {
			continue
		}

		m := quotedPropLine.FindStringSubmatch(line)
		if m == nil {
			m = propLine.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		name, value := m[1], strings.TrimSuffix(strings.TrimPrefix(m[2], `"`), `"`)
		desc := out[current]
		switch name {
		case "title":
			desc.Title = value
		case "description":
			desc.Description = value
		case "image":
			desc.Image = value
		case "alt":
			desc.Alt = value
		}
		out[current] = desc
	}

	return out
}

// LoadCategoryDescriptions reads category descriptors from contentDir,
// merging the optional language-specific _categories.<lang>.md over the
// default _categories.md. An unreadable file is treated as no data; the
// result is an empty map at worst, never an error.
func LoadCategoryDescriptions(contentDir, lang string) map[string]models.CategoryDescriptor {
	out := map[string]models.CategoryDescriptor{}

	if data, err := os.ReadFile(filepath.Join(contentDir, "_categories.md")); err == nil {
		out = ParseCategoryDescriptions(string(data))
	}

	localized := filepath.Join(contentDir, fmt.Sprintf("_categories.%s.md", lang))
	if data, err := os.ReadFile(localized); err == nil {
		for key, desc := range ParseCategoryDescriptions(string(data)) {
			out[key] = desc
		}
	}

	return out
}
