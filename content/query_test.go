package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogkit/content"
	"blogkit/models"
)

func post(path string, meta models.PostMetadata) models.Post {
	return models.Post{Metadata: meta, Path: path}
}

func TestAllCategoriesFrequencyOrder(t *testing.T) {
	posts := []models.Post{
		post("a", models.PostMetadata{Categories: []string{"Life", "Tech"}}),
		post("b", models.PostMetadata{Categories: []string{"Tech"}}),
		post("c", models.PostMetadata{Category: "Tech"}),
		post("d", models.PostMetadata{Categories: []string{"Travel"}}),
	}

	got := content.AllCategories(posts, 10)
	assert.Equal(t, []string{"Tech", "Life", "Travel"}, got)
}

func TestAllCategoriesTieBreaksOnFirstSeen(t *testing.T) {
	posts := []models.Post{
		post("a", models.PostMetadata{Categories: []string{"Life"}}),
		post("b", models.PostMetadata{Categories: []string{"Tech"}}),
	}
	assert.Equal(t, []string{"Life", "Tech"}, content.AllCategories(posts, 10))
}

func TestAllTagsLimit(t *testing.T) {
	posts := []models.Post{
		post("a", models.PostMetadata{Tags: []string{"go", "web", "api"}}),
		post("b", models.PostMetadata{Tags: []string{"go", "web"}}),
		post("c", models.PostMetadata{Tags: []string{"go"}}),
	}

	assert.Equal(t, []string{"go", "web"}, content.AllTags(posts, 2))
	assert.Equal(t, []string{"go", "web", "api"}, content.AllTags(posts, 10))
}

func TestRecentPosts(t *testing.T) {
	posts := []models.Post{
		post("a", models.PostMetadata{Title: "A"}),
		post("b", models.PostMetadata{Title: "B"}),
		post("c", models.PostMetadata{Title: "C"}),
	}

	assert.Len(t, content.RecentPosts(posts, 2), 2)
	assert.Equal(t, "A", content.RecentPosts(posts, 2)[0].Metadata.Title)
	assert.Len(t, content.RecentPosts(posts, 10), 3)
	assert.Empty(t, content.RecentPosts(posts, 0))
}

func TestSimilarPostsScoring(t *testing.T) {
	posts := []models.Post{
		post("current", models.PostMetadata{Category: "Tech", Tags: []string{"go", "web"}}),
		// Category match only: 5.
		post("cat", models.PostMetadata{Category: "Tech"}),
		// Two tag matches: 4.
		post("tags", models.PostMetadata{Category: "Life", Tags: []string{"go", "web"}}),
		// Category plus one tag: 7.
		post("both", models.PostMetadata{Category: "Tech", Tags: []string{"go"}}),
		// No overlap at all: dropped.
		post("none", models.PostMetadata{Category: "Travel", Tags: []string{"food"}}),
	}

	got := content.SimilarPosts(posts, "current", "Tech", []string{"go", "web"}, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "both", got[0].Path)
	assert.Equal(t, "cat", got[1].Path)
	assert.Equal(t, "tags", got[2].Path)
}

func TestSimilarPostsExcludesCurrentAndHonorsCount(t *testing.T) {
	posts := []models.Post{
		post("current", models.PostMetadata{Category: "Tech"}),
		post("a", models.PostMetadata{Category: "Tech"}),
		post("b", models.PostMetadata{Category: "Tech"}),
		post("c", models.PostMetadata{Category: "Tech"}),
	}

	got := content.SimilarPosts(posts, "current", "Tech", nil, 2)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.NotEqual(t, "current", p.Path)
	}
}

func TestSimilarPostsUsesFirstCategoryAsFallback(t *testing.T) {
	posts := []models.Post{
		post("plural", models.PostMetadata{Categories: []string{"Tech", "Life"}}),
	}

	got := content.SimilarPosts(posts, "current", "Tech", nil, 10)
	require.Len(t, got, 1)

	// Matching is exact on the category string, so a differently cased
	// category does not count.
	assert.Empty(t, content.SimilarPosts(posts, "current", "tech", nil, 10))
}

func TestSimilarPostsCountsEachTagOnce(t *testing.T) {
	posts := []models.Post{
		post("dup", models.PostMetadata{Tags: []string{"go", "go", "go"}}),
		post("two", models.PostMetadata{Tags: []string{"go", "web"}}),
	}

	got := content.SimilarPosts(posts, "current", "", []string{"go", "web"}, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Path, "two distinct tag matches outscore one repeated tag")
}

func TestPostExcerptPrefersFrontmatter(t *testing.T) {
	p := post("a", models.PostMetadata{Excerpt: "Hand-written summary."})
	p.Content = "Something else entirely."
	assert.Equal(t, "Hand-written summary.", content.PostExcerpt(p, 160))
}

func TestPostExcerptDerivedFromContent(t *testing.T) {
	p := post("a", models.PostMetadata{})
	p.Content = "# Heading\n\nSome **bold** text with <em>markup</em> inside.\n"

	got := content.PostExcerpt(p, 160)
	assert.Equal(t, "Heading Some bold text with markup inside.", got)
}

func TestPostExcerptTruncatesAtWordBoundary(t *testing.T) {
	p := post("a", models.PostMetadata{Excerpt: "alpha beta gamma delta"})

	got := content.PostExcerpt(p, 12)
	assert.Equal(t, "alpha beta...", got)
}
