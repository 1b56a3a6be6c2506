package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/entity"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	partSnippet    = "snippet"
	orderDate      = "date"
	typeChannel    = "channel"
	requestTimeout = 10 * time.Second
)

// API is the subset of the YouTube Data API used to resolve a channel.
type API interface {
	// SearchChannelID returns the id of the best matching channel, or "" if none matched.
	SearchChannelID(ctx context.Context, term string) (string, error)

	// ChannelDetails returns the channel profile, or nil if the id is unknown.
	ChannelDetails(ctx context.Context, channelID string) (*entity.Channel, error)

	// RecentVideos returns up to limit videos of the channel, newest first.
	RecentVideos(ctx context.Context, channelID string, limit int64) ([]entity.VideoSummary, error)
}

// Client talks to the YouTube Data API v3 with an API key.
type Client struct {
	service *yt.Service
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a Data API client from the configuration.
// A non-empty YouTubeAPIURL replaces the Google endpoint.
func NewClient(ctx context.Context, config *entity.Config) (*Client, error) {
	opts := []option.ClientOption{option.WithAPIKey(config.YouTubeAPIKey)}

	if endpoint := strings.TrimSpace(config.YouTubeAPIURL); endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}

		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := yt.NewService(ctx, opts...)

	if err != nil {
		return nil, fmt.Errorf("could not create youtube service: %w", err)
	}

	return &Client{
		service: service,
		limiter: newLimiter(config.YouTubeRPS),
		logger:  app.Logger(),
	}, nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Limit(rps), int(math.Max(1, math.Ceil(rps))))
}

// SearchChannelID runs a channel search capped at one result.
func (c *Client) SearchChannelID(ctx context.Context, term string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.service.Search.List([]string{partSnippet}).
		Type(typeChannel).
		Q(term).
		MaxResults(1).
		Context(ctx).
		Do()

	if err != nil {
		return "", fmt.Errorf("could not search channel %q: %w", term, err)
	}

	for _, item := range resp.Items {
		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			return item.Snippet.ChannelId, nil
		}

		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
	}

	c.logger.Debug("Channel search returned no items", "term", term)

	return "", nil
}

// ChannelDetails fetches the snippet, statistics and branding of a channel.
func (c *Client) ChannelDetails(ctx context.Context, channelID string) (*entity.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Channels.List([]string{partSnippet, "statistics", "brandingSettings"}).
		Id(channelID).
		Context(ctx).
		Do()

	if err != nil {
		return nil, fmt.Errorf("could not get channel %s: %w", channelID, err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	return toChannel(resp.Items[0]), nil
}

// RecentVideos searches the channel's uploads ordered by publish date.
// Items that are not videos (playlists, the channel itself) are skipped.
func (c *Client) RecentVideos(ctx context.Context, channelID string, limit int64) ([]entity.VideoSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Search.List([]string{partSnippet}).
		ChannelId(channelID).
		Order(orderDate).
		MaxResults(limit).
		Context(ctx).
		Do()

	if err != nil {
		return nil, fmt.Errorf("could not get recent videos of %s: %w", channelID, err)
	}

	videos := make([]entity.VideoSummary, 0, len(resp.Items))

	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		videos = append(videos, toVideoSummary(item))
	}

	return videos, nil
}

func toChannel(item *yt.Channel) *entity.Channel {
	channel := &entity.Channel{ID: item.Id}

	if s := item.Snippet; s != nil {
		channel.Title = s.Title
		channel.Description = s.Description
		channel.AvatarURL = mediumThumbnail(s.Thumbnails)
	}

	if st := item.Statistics; st != nil {
		channel.SubscriberCount = st.SubscriberCount
		channel.VideoCount = st.VideoCount
	}

	if b := item.BrandingSettings; b != nil && b.Image != nil {
		channel.BannerURL = b.Image.BannerExternalUrl
	}

	return channel
}

func toVideoSummary(item *yt.SearchResult) entity.VideoSummary {
	video := entity.VideoSummary{ID: item.Id.VideoId}

	if s := item.Snippet; s != nil {
		video.Title = s.Title
		video.ThumbnailURL = mediumThumbnail(s.Thumbnails)

		if published, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			video.PublishedAt = published
		}
	}

	return video
}

func mediumThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}

	if t.Medium != nil {
		return t.Medium.Url
	}

	if t.Default != nil {
		return t.Default.Url
	}

	return ""
}
