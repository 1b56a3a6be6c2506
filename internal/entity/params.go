package entity

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	FormatAtom = "atom"
	FormatRSS  = "rss"
)

const CacheTTLDefault = 60 // minutes

// FeedParams represents validated request parameters for a channel video feed
type FeedParams struct {
	// Query is the channel name or URL as typed by the user
	Query string

	// Format is the feed format, either "atom" or "rss"
	Format string

	// CacheTTL is the cache time-to-live in minutes
	// A value of 0 means no caching
	CacheTTL int
}

// NewFeedParamFromRequest parses and validates request parameters and creates a new FeedParams
func NewFeedParamFromRequest(r *http.Request) (*FeedParams, error) {
	qp := r.URL.Query()

	query := strings.TrimSpace(qp.Get("q"))

	if query == "" {
		return nil, fmt.Errorf("q is required")
	}

	format := qp.Get("format")

	if format == "" {
		format = FormatRSS
	} else if format != FormatRSS && format != FormatAtom {
		return nil, fmt.Errorf("format must be %s or %s", FormatRSS, FormatAtom)
	}

	// Parse cache TTL with default
	cacheTTL := CacheTTLDefault

	if ttlStr := qp.Get("cache_ttl"); ttlStr != "" {
		var err error
		cacheTTL, err = strconv.Atoi(ttlStr)

		if err != nil {
			return nil, fmt.Errorf("cache_ttl must be a valid integer")
		}

		if cacheTTL < 0 {
			return nil, fmt.Errorf("cache_ttl must be non-negative")
		}
	}

	return &FeedParams{
		Query:    query,
		Format:   format,
		CacheTTL: cacheTTL,
	}, nil
}
