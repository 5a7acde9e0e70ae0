package content

import (
	"regexp"
	"sort"
	"strings"

	"blogkit/models"
	"blogkit/taxonomy"
)

var (
	excerptHTMLTag  = regexp.MustCompile(`<[^>]*>`)
	excerptMarkdown = regexp.MustCompile("[#*_~`]")
	excerptNewlines = regexp.MustCompile(`\n+`)
)

// countTerms frequency-counts terms across posts, remembering first-seen
// insertion order for tie-breaking.
func countTerms(posts []models.Post, extractor taxonomy.ExtractorFunc, limit int) []string {
	counts := map[string]int{}
	var order []string

	for _, post := range posts {
		for _, term := range extractor(post) {
			if _, seen := counts[term]; !seen {
				order = append(order, term)
			}
			counts[term]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

// AllCategories returns up to limit category names sorted by how many
// posts use them, most used first.
func AllCategories(posts []models.Post, limit int) []string {
	return countTerms(posts, taxonomy.PostCategories, limit)
}

// AllTags returns up to limit tag names sorted by frequency.
func AllTags(posts []models.Post, limit int) []string {
	return countTerms(posts, taxonomy.PostTags, limit)
}

// RecentPosts returns the first count posts of the already date-sorted
// collection.
func RecentPosts(posts []models.Post, count int) []models.Post {
	if count < 0 {
		return nil
	}
	if count > len(posts) {
		count = len(posts)
	}
	return posts[:count]
}

// SimilarPosts scores every post other than the current one (identified
// by its Path) against the current post's category and tags: +5 for an
// exact category match, +2 per overlapping tag. Zero-score posts are
// dropped and the rest are returned best first, at most count of them.
//
// Scoring compares category and tag strings with exact equality, not
// slug-normalized equality like the taxonomy filters. That asymmetry is
// long-standing behavior that listings may rely on, so it is preserved
// here rather than fixed.
func SimilarPosts(allPosts []models.Post, currentPath, currentCategory string, currentTags []string, count int) []models.Post {
	type scored struct {
		post  models.Post
		score int
	}

	var candidates []scored
	for _, post := range allPosts {
		if post.Path == currentPath {
			continue
		}

		score := 0

		postCategory := post.Metadata.Category
		if postCategory == "" && len(post.Metadata.Categories) > 0 {
			postCategory = post.Metadata.Categories[0]
		}
		if currentCategory != "" && postCategory == currentCategory {
			score += 5
		}

		for _, tag := range currentTags {
			for _, postTag := range post.Metadata.Tags {
				if postTag == tag {
					score += 2
					break
				}
			}
		}

		if score > 0 {
			candidates = append(candidates, scored{post: post, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if count >= 0 && len(candidates) > count {
		candidates = candidates[:count]
	}

	out := make([]models.Post, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.post)
	}
	return out
}

// PostExcerpt returns the post's excerpt, derived from the body when the
// frontmatter has none: tags and markdown punctuation are stripped and
// the text is truncated at a word boundary within maxLength characters.
func PostExcerpt(post models.Post, maxLength int) string {
	excerpt := post.Metadata.Excerpt

	if excerpt == "" && post.Content != "" {
		text := excerptHTMLTag.ReplaceAllString(post.Content, "")
		text = excerptMarkdown.ReplaceAllString(text, "")
		text = excerptNewlines.ReplaceAllString(text, " ")
		text = strings.TrimSpace(text)
		excerpt = truncateRunes(text, maxLength*2)
	}

	if runes := []rune(excerpt); len(runes) > maxLength {
		truncated := string(runes[:maxLength])
		if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
			truncated = truncated[:lastSpace]
		}
		excerpt = truncated + "..."
	}

	return excerpt
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
