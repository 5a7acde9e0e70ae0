package main

import (
	"context"
	"flag"
	"os"

	"blogkit/cache"
	"blogkit/config"
	"blogkit/content"
	"blogkit/feed"
)

// Batch entrypoint: runs one ingestion pass over the content directory
// and writes the RSS feed, for static deployments that serve rss.xml as
// a file.
func main() {
	out := flag.String("out", "rss.xml", "output path for the generated feed")
	lang := flag.String("lang", "en", "language of the generated feed")
	flag.Parse()

	config.InitApp()
	cfg := config.GetConfig()
	log := config.Logger()

	svc := content.NewService(
		cfg,
		content.DirDiscovery{Dir: cfg.Posts.ContentDir},
		content.FileFetcher{},
		cache.New(),
		log,
	)

	posts, err := svc.GetAllPosts(context.Background(), content.Options{
		Lang:           *lang,
		IncludeContent: true,
	})
	if err != nil {
		log.Error("ingestion failed", "error", err)
		os.Exit(1)
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
		Language:        *lang,
	}, log)
	if err != nil {
		log.Error("feed generation failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, []byte(xml), 0o644); err != nil {
		log.Error("could not write feed", "path", *out, "error", err)
		os.Exit(1)
	}

	log.Info("feed written", "path", *out, "posts", len(posts))
}
