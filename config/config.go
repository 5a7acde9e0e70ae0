package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig `yaml:"logging"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	URI         string        `yaml:"uri"`
	Posts       PostsConfig   `yaml:"posts"`
	I18n        I18nConfig    `yaml:"i18n"`
	Feed        FeedConfig    `yaml:"feed"`
	Debug       bool          `yaml:"debug"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PostsConfig controls content discovery and the derived views over the
// post collection.
type PostsConfig struct {
	// ContentDir is the directory walked for *.md content files.
	ContentDir string `yaml:"content_dir"`
	// ExcerptLength is the character budget for derived excerpts.
	ExcerptLength          int            `yaml:"excerpt_length"`
	RelatedPostsCount      int            `yaml:"related_posts_count"`
	RecentPostsCount       int            `yaml:"recent_posts_count"`
	PopularTagsCount       int            `yaml:"popular_tags_count"`
	PopularCategoriesCount int            `yaml:"popular_categories_count"`
	ReadTime               ReadTimeConfig `yaml:"read_time"`
}

// ReadTimeConfig are the tunables for the read-time estimator. Zero
// values fall through to the estimator's built-in defaults.
type ReadTimeConfig struct {
	WordsPerMinute            int `yaml:"words_per_minute"`
	DefaultTime               int `yaml:"default_time"`
	MinTimeForLongArticle     int `yaml:"min_time_for_long_article"`
	MinTimeForVeryLongArticle int `yaml:"min_time_for_very_long_article"`
	LongArticleThreshold      int `yaml:"long_article_threshold"`
	VeryLongArticleThreshold  int `yaml:"very_long_article_threshold"`
	HeadingsWeight            int `yaml:"headings_weight"`
}

type I18nConfig struct {
	Enabled            bool     `yaml:"enabled"`
	SupportedLanguages []string `yaml:"supported_languages"`
	DefaultLanguage    string   `yaml:"default_language"`
}

type FeedConfig struct {
	// SiteURL is the absolute base URL used for feed links. Required
	// for feed generation.
	SiteURL     string `yaml:"site_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Path        string `yaml:"path"`
	MaxItems    int    `yaml:"max_items"`
}

// Default returns the built-in configuration used when no config.yaml is
// present. Values mirror the documented pipeline defaults.
func Default() AppConfig {
	return AppConfig{
		Logging:     LoggingConfig{Level: "info"},
		Name:        "Blog",
		Description: "Our Blog",
		URI:         "/blog",
		Posts: PostsConfig{
			ContentDir:             "content",
			ExcerptLength:          160,
			RelatedPostsCount:      3,
			RecentPostsCount:       5,
			PopularTagsCount:       10,
			PopularCategoriesCount: 5,
		},
		I18n: I18nConfig{
			SupportedLanguages: []string{"en"},
			DefaultLanguage:    "en",
		},
		Feed: FeedConfig{
			Path:     "/blog/rss.xml",
			MaxItems: 20,
		},
	}
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c := Default()

	// load configuration file over the defaults when present
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}
	config = &c
}

// GetConfig returns a resolved, immutable configuration snapshot.
func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
