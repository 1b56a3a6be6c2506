package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/youtube"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyQuery is returned for blank input, before any remote call
	ErrEmptyQuery = errors.New("query is empty")

	// ErrChannelNotFound is returned when the search yields no channel or fails
	ErrChannelNotFound = errors.New("channel not found")
)

// Resolution is the outcome of a successful channel lookup.
// Channel is nil when the details lookup failed, Videos is nil when the
// videos lookup failed. Neither failure affects the other half.
type Resolution struct {
	Handle    string
	ChannelID string
	Channel   *entity.Channel
	Videos    []entity.VideoSummary
}

// Resolver turns free-form channel input into a channel and its recent videos.
type Resolver struct {
	api        youtube.API
	videoLimit int64
	logger     *slog.Logger
}

// New creates a Resolver fetching videoLimit recent videos per channel.
func New(api youtube.API, videoLimit int64) *Resolver {
	return &Resolver{
		api:        api,
		videoLimit: videoLimit,
		logger:     app.Logger(),
	}
}

// Resolve looks the channel up with the configured video limit.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Resolution, error) {
	return r.ResolveRecent(ctx, query, r.videoLimit)
}

// ResolveRecent looks the channel up and fetches up to limit recent videos.
func (r *Resolver) ResolveRecent(ctx context.Context, query string, limit int64) (*Resolution, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	handle := youtube.ExtractHandle(query)
	channelID, err := r.api.SearchChannelID(ctx, handle)

	if err != nil {
		r.logger.Error("Error fetching channel id", "query", query, "handle", handle, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, handle)
	}

	if channelID == "" {
		r.logger.Info("No channel matched the query", "query", query, "handle", handle)
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, handle)
	}

	res := &Resolution{
		Handle:    handle,
		ChannelID: channelID,
	}

	// Errors are logged and never returned so one lookup cannot cancel the other.
	var g errgroup.Group

	g.Go(func() error {
		channel, err := r.api.ChannelDetails(ctx, channelID)

		if err != nil {
			r.logger.Error("Error fetching channel details", "channelId", channelID, "error", err)
			return nil
		}

		res.Channel = channel

		return nil
	})

	g.Go(func() error {
		videos, err := r.api.RecentVideos(ctx, channelID, limit)

		if err != nil {
			r.logger.Error("Error fetching videos", "channelId", channelID, "error", err)
			return nil
		}

		res.Videos = videos

		return nil
	})

	_ = g.Wait()

	return res, nil
}
