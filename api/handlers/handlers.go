package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogkit/config"
	"blogkit/content"
	"blogkit/feed"
	"blogkit/models"
	"blogkit/renderer"
	"blogkit/slug"
	"blogkit/taxonomy"
)

func parseOptions(c *gin.Context) content.Options {
	return content.Options{
		Lang:                     c.DefaultQuery("lang", "en"),
		IncludeContent:           c.Query("content") == "true",
		IncludeLocalizedVersions: c.Query("localized") == "true",
	}
}

// ListPostsHandler returns the full normalized collection, newest first,
// plus the sidebar aggregates.
func ListPostsHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.GetAllPosts(c.Request.Context(), parseOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"posts":      posts,
			"totalPosts": len(posts),
			"categories": content.AllCategories(posts, cfg.Posts.PopularCategoriesCount),
			"tags":       content.AllTags(posts, cfg.Posts.PopularTagsCount),
		})
	}
}

// RecentPostsHandler returns the newest posts, count controlled by query
// with the configured default.
func RecentPostsHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, _ := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(cfg.Posts.RecentPostsCount)))
		posts, err := svc.GetAllPosts(c.Request.Context(), parseOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, content.RecentPosts(posts, count))
	}
}

// CategoryHandler returns the posts of one category slug, with the
// recovered display name and optional descriptor metadata.
func CategoryHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := parseOptions(c)
		posts, err := svc.GetAllPosts(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		categorySlug := slug.From(c.Param("slug"))
		matched := taxonomy.FilterByCategory(posts, categorySlug, slug.From)
		original := taxonomy.OriginalName(posts, taxonomy.PostCategories, categorySlug, slug.From)

		if len(matched) == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("category %q not found or has no posts", categorySlug),
			})
			return
		}

		descriptors := taxonomy.LoadCategoryDescriptions(cfg.Posts.ContentDir, opts.Lang)
		info := descriptors[categorySlug]

		c.JSON(http.StatusOK, gin.H{
			"posts":       matched,
			"category":    original,
			"description": info.Description,
			"image":       info.Image,
			"imageAlt":    info.Alt,
		})
	}
}

// TagHandler returns the posts carrying one tag slug.
func TagHandler(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.GetAllPosts(c.Request.Context(), parseOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		tagSlug := slug.From(c.Param("slug"))
		matched := taxonomy.FilterByTag(posts, tagSlug, slug.From)
		if len(matched) == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("no posts with tag %q", tagSlug),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"posts": matched,
			"tag":   taxonomy.OriginalName(posts, taxonomy.PostTags, tagSlug, slug.From),
		})
	}
}

// CategoriesHandler returns the popular categories across the whole
// collection.
func CategoriesHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.GetAllPosts(c.Request.Context(), parseOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, content.AllCategories(posts, cfg.Posts.PopularCategoriesCount))
	}
}

// TagsHandler returns the popular tags across the whole collection.
func TagsHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.GetAllPosts(c.Request.Context(), parseOptions(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, content.AllTags(posts, cfg.Posts.PopularTagsCount))
	}
}

// GetPostHandler returns one post by its /YYYY/MM/slug URL path,
// including the rendered HTML body and related posts.
func GetPostHandler(svc *content.Service, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		urlPath := fmt.Sprintf("/%s/%s/%s", c.Param("year"), c.Param("month"), c.Param("slug"))

		opts := parseOptions(c)
		opts.IncludeContent = true
		posts, err := svc.GetAllPosts(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var post *models.Post
		for i := range posts {
			if posts[i].URLPath == urlPath && posts[i].Lang == opts.Lang {
				post = &posts[i]
				break
			}
		}
		if post == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		html, err := renderer.RenderHTML(post.Content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		category := ""
		if categories := taxonomy.PostCategories(*post); len(categories) > 0 {
			category = categories[0]
		}
		related := content.SimilarPosts(posts, post.Path, category,
			taxonomy.PostTags(*post), cfg.Posts.RelatedPostsCount)

		c.JSON(http.StatusOK, gin.H{
			"post":    post,
			"html":    html,
			"related": related,
		})
	}
}

// RSSHandler serves the RSS 2.0 feed of the collection.
func RSSHandler(svc *content.Service, cfg config.AppConfig, log feed.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.GetAllPosts(c.Request.Context(), content.Options{
			Lang:           c.DefaultQuery("lang", "en"),
			IncludeContent: true,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		title := cfg.Feed.Title
		if title == "" {
			title = cfg.Name
		}
		description := cfg.Feed.Description
		if description == "" {
			description = cfg.Description
		}

		xml, err := feed.GenerateRSS(posts, feed.Options{
			SiteURL:         cfg.Feed.SiteURL,
			BlogURI:         cfg.URI,
			FeedTitle:       title,
			FeedDescription: description,
			FeedPath:        cfg.Feed.Path,
			MaxItems:        cfg.Feed.MaxItems,
			Language:        c.DefaultQuery("lang", "en"),
		}, log)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(xml))
	}
}
