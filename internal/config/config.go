package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source identifies one RSS feed to aggregate.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// defaultFeeds is the fixed set of AI news feeds aggregated when no
// override is configured.
var defaultFeeds = []Source{
	{Name: "Google News AI", URL: "https://news.google.com/rss/search?q=artificial+intelligence+AI&hl=en-US&gl=US&ceid=US:en"},
	{Name: "TechCrunch AI", URL: "https://techcrunch.com/tag/artificial-intelligence/feed/"},
	{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml"},
	{Name: "DeepMind Blog", URL: "https://deepmind.com/blog/feed/basic/"},
	{Name: "Anthropic Blog", URL: "https://www.anthropic.com/index.xml"},
}

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Upstream credentials. All optional: a missing key degrades that
	// source as documented on the adapters.
	NewsAPIKey    string `json:"-"`
	BingAPIKey    string `json:"-"`
	YouTubeAPIKey string `json:"-"`

	// RSS settings
	Feeds []Source `json:"rss_feeds"`

	// Cache settings
	CacheTTLMinutes int `json:"cache_ttl_minutes"`

	// Timeouts, in seconds
	FetchTimeout   int `json:"fetch_timeout_seconds"`
	ContentTimeout int `json:"content_timeout_seconds"`
}

// Load reads configuration from environment variables and an optional
// .env file. It never fails on missing credentials; absent keys simply
// disable their source.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		NewsAPIKey:      getEnvOrDefault("NEWSAPI_KEY", ""),
		BingAPIKey:      getEnvOrDefault("BING_API_KEY", ""),
		YouTubeAPIKey:   getEnvOrDefault("YOUTUBE_API_KEY", ""),
		Feeds:           parseFeeds(getEnvOrDefault("RSS_FEEDS", "")),
		CacheTTLMinutes: getEnvOrDefaultInt("CACHE_TTL_MINUTES", 12),
		FetchTimeout:    getEnvOrDefaultInt("FETCH_TIMEOUT_SECONDS", 10),
		ContentTimeout:  getEnvOrDefaultInt("CONTENT_TIMEOUT_SECONDS", 15),
	}
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// parseFeeds parses a comma-separated list of "name|url" pairs. An
// empty or malformed value falls back to the default feed set.
func parseFeeds(value string) []Source {
	if value == "" {
		return defaultFeeds
	}

	var feeds []Source
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, url, found := strings.Cut(part, "|")
		if !found || strings.TrimSpace(url) == "" {
			continue
		}
		feeds = append(feeds, Source{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}

	if len(feeds) == 0 {
		return defaultFeeds
	}
	return feeds
}
