// Package youtube talks to the YouTube Data API and the timedtext endpoint
package youtube

import (
	"regexp"

	perr "vidqa/internal/platform/errors"
)

var (
	urlIDRe  = regexp.MustCompile(`(?:v=|/live/|/shorts/|/youtu\.be/|youtu\.be/)([0-9A-Za-z_-]{11})`)
	bareIDRe = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// VideoID extracts the 11 character id from a watch, live, shorts, or
// youtu.be URL, or accepts a bare id unchanged
func VideoID(urlOrID string) (string, error) {
	if m := urlIDRe.FindStringSubmatch(urlOrID); m != nil {
		return m[1], nil
	}
	if bareIDRe.MatchString(urlOrID) {
		return urlOrID, nil
	}
	return "", perr.InvalidArgf("could not extract video id from %q", urlOrID)
}

// WatchURL builds the canonical watch URL for id
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ValidID reports whether s looks like a video id
func ValidID(s string) bool { return bareIDRe.MatchString(s) }
