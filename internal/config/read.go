package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nDmitry/ytblog/internal/entity"
)

const (
	defaultBlogServiceURL    = "http://127.0.0.1:8000/generate-blog"
	defaultHTTPPort          = "8080"
	defaultYouTubeRPS        = 5
	defaultYouTubeCacheTTL   = 10 // minutes
	defaultRecentVideosLimit = 20
	defaultFeedVideosLimit   = 5
	defaultWorkspaceIdleTTL  = 60 // minutes
)

// Load builds the configuration from an optional JSON file and the process environment.
// Environment variables take precedence over the file.
func Load(configPath string) (*entity.Config, error) {
	return load(configPath, os.LookupEnv)
}

// Read parses a JSON config file without applying defaults or the environment.
func Read(configPath string) (*entity.Config, error) {
	contents, err := os.ReadFile(configPath)

	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var config entity.Config

	if err = json.Unmarshal(contents, &config); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	return &config, nil
}

func load(configPath string, lookup func(string) (string, bool)) (*entity.Config, error) {
	config := &entity.Config{}

	if configPath != "" {
		var err error

		if config, err = Read(configPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config, lookup); err != nil {
		return nil, err
	}

	applyDefaults(config)

	if config.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	return config, nil
}

// nolint: cyclop
func applyEnv(config *entity.Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("YOUTUBE_API_KEY", &config.YouTubeAPIKey)
	str("YOUTUBE_API_URL", &config.YouTubeAPIURL)
	str("BLOG_SERVICE_URL", &config.BlogServiceURL)
	str("HTTP_SERVER_PORT", &config.HTTPPort)
	str("REDIS_HOST", &config.RedisHost)
	str("LOG_LEVEL", &config.LogLevel)

	if v, ok := lookup("YOUTUBE_RPS"); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)

		if err != nil || rps < 0 {
			return fmt.Errorf("YOUTUBE_RPS must be a non-negative number")
		}

		config.YouTubeRPS = rps
	}

	if v, ok := lookup("YOUTUBE_CACHE_TTL"); ok && v != "" {
		ttl, err := strconv.Atoi(v)

		if err != nil || ttl < 0 {
			return fmt.Errorf("YOUTUBE_CACHE_TTL must be a non-negative integer")
		}

		config.YouTubeCacheTTL = &ttl
	}

	if v, ok := lookup("WORKSPACE_IDLE_TTL"); ok && v != "" {
		ttl, err := strconv.Atoi(v)

		if err != nil || ttl <= 0 {
			return fmt.Errorf("WORKSPACE_IDLE_TTL must be a positive integer")
		}

		config.WorkspaceIdleTTL = ttl
	}

	limits := []struct {
		key string
		dst *int64
	}{
		{"RECENT_VIDEOS_LIMIT", &config.RecentVideosLimit},
		{"FEED_VIDEOS_LIMIT", &config.FeedVideosLimit},
	}

	for _, l := range limits {
		v, ok := lookup(l.key)

		if !ok || v == "" {
			continue
		}

		n, err := strconv.ParseInt(v, 10, 64)

		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", l.key)
		}

		*l.dst = n
	}

	return nil
}

// An explicit cache TTL of 0, from the file or the environment, keeps caching disabled.
func applyDefaults(config *entity.Config) {
	if config.YouTubeCacheTTL == nil {
		ttl := defaultYouTubeCacheTTL
		config.YouTubeCacheTTL = &ttl
	}

	if config.WorkspaceIdleTTL <= 0 {
		config.WorkspaceIdleTTL = defaultWorkspaceIdleTTL
	}

	if config.BlogServiceURL == "" {
		config.BlogServiceURL = defaultBlogServiceURL
	}

	if config.HTTPPort == "" {
		config.HTTPPort = defaultHTTPPort
	}

	if config.YouTubeRPS == 0 {
		config.YouTubeRPS = defaultYouTubeRPS
	}

	if config.RecentVideosLimit == 0 {
		config.RecentVideosLimit = defaultRecentVideosLimit
	}

	if config.FeedVideosLimit == 0 {
		config.FeedVideosLimit = defaultFeedVideosLimit
	}
}
