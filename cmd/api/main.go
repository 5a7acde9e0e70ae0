package main

import (
	"net/http"
	"os"

	"github.com/rs/cors"

	"blogkit/api/router"
	"blogkit/cache"
	"blogkit/cmd/internal/logger"
	"blogkit/config"
	"blogkit/content"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	cfg := config.GetConfig()
	svc := content.NewService(
		cfg,
		content.DirDiscovery{Dir: cfg.Posts.ContentDir},
		content.FileFetcher{},
		cache.New(),
		config.Logger(),
	)

	r := router.New(svc, cfg)
	handler := cors.Default().Handler(r)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Log.Infof("serving blog API on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
