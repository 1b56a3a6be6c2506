package entity

import "time"

type Config struct {
	YouTubeAPIKey string `json:"youtubeApiKey"`
	// Base endpoint of the YouTube Data API, empty means the Google default.
	YouTubeAPIURL string `json:"youtubeApiUrl"`
	// Requests per second allowed against the YouTube Data API.
	YouTubeRPS float64 `json:"youtubeRps"`
	// Minutes to keep YouTube responses in Redis, 0 disables caching.
	// Nil until defaults are applied, so an explicit 0 is kept.
	YouTubeCacheTTL *int `json:"youtubeCacheTtlMinutes"`

	BlogServiceURL string `json:"blogServiceUrl"`

	RecentVideosLimit int64 `json:"recentVideosLimit"`
	FeedVideosLimit   int64 `json:"feedVideosLimit"`

	HTTPPort  string `json:"httpPort"`
	RedisHost string `json:"redisHost"`
	LogLevel  string `json:"logLevel"`

	// Minutes a workspace may stay unused before it is dropped.
	WorkspaceIdleTTL int `json:"workspaceIdleTtlMinutes"`
}

// CacheTTL returns how long YouTube responses are cached.
func (c *Config) CacheTTL() time.Duration {
	if c.YouTubeCacheTTL == nil {
		return 0
	}

	return time.Duration(*c.YouTubeCacheTTL) * time.Minute
}

// IdleTTL returns how long an unused workspace is kept.
func (c *Config) IdleTTL() time.Duration {
	return time.Duration(c.WorkspaceIdleTTL) * time.Minute
}
