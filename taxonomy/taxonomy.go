// Package taxonomy resolves category and tag membership for posts.
//
// Categories and tags are free-form strings with independent namespaces,
// and their slugs can collide across namespaces. Every query here
// therefore disambiguates per post and per namespace instead of trusting
// a precomputed slug-to-term table.
package taxonomy

import (
	"blogkit/models"
)

// SlugFunc normalizes a term for comparison, typically slug.From.
type SlugFunc func(string) string

// ExtractorFunc pulls the terms of one namespace out of a post,
// typically PostCategories or PostTags.
type ExtractorFunc func(models.Post) []string

// PostCategories returns the post's categories: the plural field when
// non-empty, else the singular field wrapped in a one-element slice,
// else nothing.
func PostCategories(post models.Post) []string {
	if len(post.Metadata.Categories) > 0 {
		return post.Metadata.Categories
	}
	if post.Metadata.Category != "" {
		return []string{post.Metadata.Category}
	}
	return nil
}

// PostTags returns the post's tags. There is no singular fallback for
// tags.
func PostTags(post models.Post) []string {
	return post.Metadata.Tags
}

func containsSlug(terms []string, target string, slugFn SlugFunc) bool {
	for _, term := range terms {
		if slugFn(term) == target {
			return true
		}
	}
	return false
}

// FilterByCategory returns the posts whose categories contain a term
// slugifying to categorySlug. A post whose only occurrence of the term
// is in its tag list is excluded, so a purely-tag term never leaks into
// category listings when slugs collide.
func FilterByCategory(posts []models.Post, categorySlug string, slugFn SlugFunc) []models.Post {
	var out []models.Post
	for _, post := range posts {
		inCategories := containsSlug(post.Metadata.Categories, categorySlug, slugFn)
		inSingular := post.Metadata.Category != "" && slugFn(post.Metadata.Category) == categorySlug

		tagOnly := containsSlug(post.Metadata.Tags, categorySlug, slugFn) &&
			!inCategories && !inSingular

		if (inCategories || inSingular) && !tagOnly {
			out = append(out, post)
		}
	}
	return out
}

// FilterByTag returns the posts whose tags contain a term slugifying to
// tagSlug. The symmetric exclusivity check suppresses posts where the
// term appears only as a category, so a category-only term never shows
// up under a colliding tag slug.
func FilterByTag(posts []models.Post, tagSlug string, slugFn SlugFunc) []models.Post {
	var out []models.Post
	for _, post := range posts {
		inTags := containsSlug(post.Metadata.Tags, tagSlug, slugFn)

		categoryOnly := (containsSlug(post.Metadata.Categories, tagSlug, slugFn) && !inTags) ||
			(post.Metadata.Category != "" && slugFn(post.Metadata.Category) == tagSlug && !inTags)

		if inTags && !categoryOnly {
			out = append(out, post)
		}
	}
	return out
}

// OriginalName recovers the display form of a slugified term by scanning
// the extracted terms of every post for the first literal whose slug
// matches. Slugification is lossy, so when no literal matches the slug
// itself is returned.
func OriginalName(posts []models.Post, extractor ExtractorFunc, slugifiedTerm string, slugFn SlugFunc) string {
	for _, post := range posts {
		for _, term := range extractor(post) {
			if slugFn(term) == slugifiedTerm {
				return term
			}
		}
	}
	return slugifiedTerm
}
