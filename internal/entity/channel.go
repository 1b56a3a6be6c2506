package entity

import "time"

const (
	watchURLPrefix   = "https://www.youtube.com/watch?v="
	channelURLPrefix = "https://www.youtube.com/channel/"
)

// Channel is the profile of a YouTube channel as shown above the video grid.
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
	BannerURL       string `json:"bannerUrl,omitempty"`
	SubscriberCount uint64 `json:"subscriberCount"`
	VideoCount      uint64 `json:"videoCount"`
	Description     string `json:"description"`
}

// VideoSummary is the minimal video metadata needed for the gallery.
type VideoSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Publish date as reported by the search endpoint, RFC3339.
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// WatchURL returns the canonical watch page URL of the video.
func (v VideoSummary) WatchURL() string {
	return WatchURL(v.ID)
}

// WatchURL builds the canonical watch page URL for a video id.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}

// ChannelURL returns the channel page URL for a channel id.
func ChannelURL(channelID string) string {
	return channelURLPrefix + channelID
}
