package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/entity"
)

// ErrUnexpectedStatus is returned when the service answers with a non-2xx status
var ErrUnexpectedStatus = errors.New("unexpected status from blog service")

// ErrInvalidVideoURL is returned for URLs the service would reject as not a YouTube video
var ErrInvalidVideoURL = errors.New("invalid YouTube URL")

// Watch, embed and short links with an 11 character video id.
var videoIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:.*v=|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

const maxResponseSize = 4 << 20

type generateRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Client posts video URLs to the blog generation service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the generate-blog endpoint at endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     app.Logger(),
	}
}

// Generate asks the service for a blog post about the video at youtubeURL.
func (c *Client) Generate(ctx context.Context, youtubeURL string) (*entity.GeneratedDocument, error) {
	if ExtractVideoID(youtubeURL) == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVideoURL, youtubeURL)
	}

	payload, err := json.Marshal(generateRequest{YouTubeURL: youtubeURL})

	if err != nil {
		return nil, fmt.Errorf("could not encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))

	if err != nil {
		return nil, fmt.Errorf("could not create generate request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Info("Requesting blog generation", "youtubeUrl", youtubeURL)

	res, err := c.httpClient.Do(req)

	if err != nil {
		return nil, fmt.Errorf("could not reach blog service: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))

	if err != nil {
		return nil, fmt.Errorf("could not read blog service response: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var detail errorResponse

		if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
			return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, res.StatusCode, detail.Detail)
		}

		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, res.StatusCode)
	}

	var doc entity.GeneratedDocument

	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("could not decode blog service response: %w", err)
	}

	return &doc, nil
}

// ExtractVideoID returns the video id of a watch, embed or youtu.be link, or "".
func ExtractVideoID(url string) string {
	if m := videoIDRegex.FindStringSubmatch(url); m != nil {
		return m[1]
	}

	return ""
}
