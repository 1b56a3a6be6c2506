package feed

import (
	"fmt"
	"html"

	"github.com/gorilla/feeds"
	"github.com/nDmitry/ytblog/internal/entity"
	"github.com/nDmitry/ytblog/internal/resolver"
)

const thumbnailType = "image/jpeg"

// Generator renders resolved channels as feeds.
type Generator struct{}

func (Generator) Generate(res *resolver.Resolution, params *entity.FeedParams) ([]byte, error) {
	return Generate(res, params)
}

// Generate creates a feed of a channel's recent videos and returns it as a byte array
func Generate(res *resolver.Resolution, params *entity.FeedParams) ([]byte, error) {
	channelURL := entity.ChannelURL(res.ChannelID)

	feed := &feeds.Feed{
		Id:    channelURL,
		Title: res.Handle,
		Link:  &feeds.Link{Href: channelURL},
	}

	if ch := res.Channel; ch != nil {
		feed.Title = ch.Title
		feed.Description = ch.Description

		if ch.AvatarURL != "" {
			feed.Image = &feeds.Image{Url: ch.AvatarURL, Title: ch.Title, Link: channelURL}
		}
	}

	for _, v := range res.Videos {
		item := &feeds.Item{
			Id:      v.ID,
			Title:   v.Title,
			Link:    &feeds.Link{Href: v.WatchURL()},
			Created: v.PublishedAt,
		}

		if v.ThumbnailURL != "" {
			item.Content = fmt.Sprintf(`<a href="%s"><img src="%s" alt="%s"></a>`,
				html.EscapeString(v.WatchURL()),
				html.EscapeString(v.ThumbnailURL),
				html.EscapeString(v.Title))
			item.Enclosure = &feeds.Enclosure{
				Url:    v.ThumbnailURL,
				Type:   thumbnailType,
				Length: "0",
			}
		}

		feed.Items = append(feed.Items, item)

		if feed.Created.IsZero() || v.PublishedAt.After(feed.Created) {
			feed.Created = v.PublishedAt
		}
	}

	var content string
	var err error

	switch params.Format {
	case entity.FormatRSS:
		content, err = feed.ToRss()
	case entity.FormatAtom:
		content, err = feed.ToAtom()
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", params.Format)
	}

	if err != nil {
		return nil, fmt.Errorf("could not marshal channel %s to feed: %w", res.ChannelID, err)
	}

	return []byte(content), nil
}
