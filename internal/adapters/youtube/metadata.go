package youtube

import (
	"context"
	"net/url"
	"time"

	perr "vidqa/internal/platform/errors"
)

// VideoMetadata is the snippet subset the pipeline needs
type VideoMetadata struct {
	YouTubeID    string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  *time.Time
}

type videosListResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// Metadata fetches snippet metadata for one video via the Data API.
// A video absent from the response maps to a not found error
func (c *Client) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if c.opts.APIKey == "" {
		return nil, perr.InvalidArgf("youtube api key not configured")
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.opts.APIKey)

	var out videosListResponse
	if err := c.getJSON(ctx, c.opts.APIBase+"/videos?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, perr.NotFoundf("video %s not found", videoID)
	}

	sn := out.Items[0].Snippet
	md := &VideoMetadata{
		YouTubeID:    videoID,
		Title:        sn.Title,
		Description:  sn.Description,
		ChannelID:    sn.ChannelID,
		ChannelTitle: sn.ChannelTitle,
	}
	if sn.PublishedAt != "" {
		if ts, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
			md.PublishedAt = &ts
		}
	}
	return md, nil
}
