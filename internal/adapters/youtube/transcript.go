package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"net/url"
	"strings"

	"vidqa/internal/core/answers"
	perr "vidqa/internal/platform/errors"
)

// timedtext XML as served by the captions endpoint
type timedtextDoc struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedtextSeg `xml:"text"`
}

type timedtextSeg struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

// Transcript fetches the english caption track for a video and returns the
// timed segments in order. An empty track maps to a not found error so the
// pipeline treats it as a terminal fetch failure
func (c *Client) Transcript(ctx context.Context, videoID string) ([]answers.Segment, error) {
	q := url.Values{}
	q.Set("lang", "en")
	q.Set("v", videoID)

	resp, err := c.get(ctx, c.opts.TimedtextBase+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "transcript read failed")
	}
	if len(raw) == 0 {
		// the endpoint answers 200 with an empty body when no track exists
		return nil, perr.NotFoundf("no transcript for %s", videoID)
	}

	var doc timedtextDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "transcript parse failed")
	}
	if len(doc.Texts) == 0 {
		return nil, perr.NotFoundf("empty transcript for %s", videoID)
	}

	segs := make([]answers.Segment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		segs = append(segs, answers.Segment{
			Start:    t.Start,
			Duration: t.Duration,
			Text:     strings.TrimSpace(t.Body),
		})
	}
	return segs, nil
}

// RawData serializes segments to the JSON stored alongside a video
func RawData(segs []answers.Segment) ([]byte, error) {
	type wire struct {
		Start float64 `json:"start"`
		Text  string  `json:"text"`
	}
	out := make([]wire, 0, len(segs))
	for _, s := range segs {
		out = append(out, wire{Start: s.Start, Text: s.Text})
	}
	return json.Marshal(out)
}

// FullText joins all segment text into one searchable string
func FullText(segs []answers.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
