package blog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nDmitry/ytblog/internal/blog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-blog", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"youtube_url": watchURL}, body)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"T","content":"<p>C</p>","highlights":["Diamond Beach"],"tips":[]}`)
	}))
	defer srv.Close()

	doc, err := blog.NewClient(srv.URL+"/generate-blog").Generate(context.Background(), watchURL)
	require.NoError(t, err)

	assert.Equal(t, "T", doc.Title)
	assert.Equal(t, "<p>C</p>", doc.Content)
	assert.Equal(t, []string{"Diamond Beach"}, doc.Highlights)
	assert.Empty(t, doc.Tips)
}

func TestClient_Generate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		url      string
		sentinel error
		contains string
	}{
		{
			name:     "Service detail is reported",
			status:   http.StatusNotFound,
			body:     `{"detail":"Captions are disabled or not available for this video."}`,
			url:      watchURL,
			sentinel: blog.ErrUnexpectedStatus,
			contains: "Captions are disabled",
		},
		{
			name:     "Status without detail",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			url:      watchURL,
			sentinel: blog.ErrUnexpectedStatus,
			contains: "500",
		},
		{
			name:     "Invalid URL is rejected before the call",
			url:      "https://www.youtube.com/watch?v=short",
			sentinel: blog.ErrInvalidVideoURL,
			contains: "invalid YouTube URL",
		},
		{
			name:     "Broken JSON",
			status:   http.StatusOK,
			body:     `{"title":`,
			url:      watchURL,
			contains: "could not decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := blog.NewClient(srv.URL).Generate(context.Background(), tt.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}

			if tt.sentinel == blog.ErrInvalidVideoURL {
				assert.False(t, called)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/@veritasium", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, blog.ExtractVideoID(tt.url))
		})
	}
}
