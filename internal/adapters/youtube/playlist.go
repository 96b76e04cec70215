package youtube

import (
	"context"
	"net/url"

	perr "vidqa/internal/platform/errors"
)

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// PlaylistVideoIDs walks a playlist page by page and returns every video id
// in playlist order. Uploads playlists let callers scan a whole channel
func (c *Client) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	if c.opts.APIKey == "" {
		return nil, perr.InvalidArgf("youtube api key not configured")
	}

	var ids []string
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("part", "contentDetails")
		q.Set("playlistId", playlistID)
		q.Set("maxResults", "50")
		q.Set("key", c.opts.APIKey)
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var out playlistItemsResponse
		if err := c.getJSON(ctx, c.opts.APIBase+"/playlistItems?"+q.Encode(), &out); err != nil {
			return nil, err
		}
		for _, it := range out.Items {
			if it.ContentDetails.VideoID != "" {
				ids = append(ids, it.ContentDetails.VideoID)
			}
		}
		if out.NextPageToken == "" {
			return ids, nil
		}
		pageToken = out.NextPageToken
	}
}
