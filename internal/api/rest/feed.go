package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/cache"
	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/resolver"
)

// FeedGenerator renders a resolved channel as a feed
type FeedGenerator interface {
	Generate(res *resolver.Resolution, params *entity.FeedParams) ([]byte, error)
}

// FeedHandler serves feeds of a channel's most recent videos
type FeedHandler struct {
	cache     cache.Cache
	resolver  Resolver
	generator FeedGenerator
	limit     int64
	logger    *slog.Logger
}

// NewFeedHandler creates a new FeedHandler and sets up routes
func NewFeedHandler(mux *http.ServeMux, c cache.Cache, r Resolver, g FeedGenerator, limit int64) *FeedHandler {
	handler := &FeedHandler{
		cache:     c,
		resolver:  r,
		generator: g,
		limit:     limit,
		logger:    app.Logger(),
	}

	mux.HandleFunc("GET /api/channels/feed", handler.GetChannelFeed)

	return handler
}

// GetChannelFeed handles requests for channel video feeds
func (h *FeedHandler) GetChannelFeed(w http.ResponseWriter, r *http.Request) {
	params, err := entity.NewFeedParamFromRequest(r)

	if err != nil {
		handleError(w, err, http.StatusBadRequest)
		return
	}

	// Try to get from cache first if caching is enabled
	if params.CacheTTL > 0 {
		cachedContent, cacheErr := h.cache.Get(r.Context(), h.buildCacheKey(params))

		if cacheErr == nil {
			w.Header().Set("X-CACHE-STATUS", "HIT")
			h.serveContent(w, cachedContent, params.Format, params.CacheTTL)
			return
		} else if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			// Real error, not just cache miss
			h.logger.Error("Cache error", "error", cacheErr)
		}
	}

	res, err := h.resolver.ResolveRecent(r.Context(), params.Query, h.limit)

	if errors.Is(err, resolver.ErrChannelNotFound) {
		handleError(w, err, http.StatusNotFound)
		return
	}

	if err != nil {
		handleError(w, err, http.StatusInternalServerError)
		return
	}

	content, err := h.generator.Generate(res, params)

	if err != nil {
		handleError(w, err, http.StatusInternalServerError)
		return
	}

	if params.CacheTTL > 0 {
		cacheTTL := time.Duration(params.CacheTTL) * time.Minute

		// Use background context for caching to avoid cancellation
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.cache.Set(cacheCtx, h.buildCacheKey(params), content, cacheTTL); err != nil {
			h.logger.Error("Failed to cache content", "error", err)
		}
	}

	w.Header().Set("X-CACHE-STATUS", "MISS")
	h.serveContent(w, content, params.Format, params.CacheTTL)
}

// buildCacheKey generates a cache key based on request parameters
func (h *FeedHandler) buildCacheKey(params *entity.FeedParams) string {
	return fmt.Sprintf("feed:channel:%s:%s:%d",
		strings.ToLower(params.Query),
		params.Format,
		h.limit)
}

// serveContent sends the content to the client with appropriate headers
func (h *FeedHandler) serveContent(w http.ResponseWriter, content []byte, format string, cacheTTL int) {
	var contentType string
	switch format {
	case entity.FormatRSS:
		contentType = "application/rss+xml"
	case entity.FormatAtom:
		contentType = "application/atom+xml"
	default:
		contentType = "application/xml"
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")

	if cacheTTL > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheTTL*60))
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		handleBadErrorResponse(err, content)
	}
}
