// Package markers recovers question headings from video description text.
// A marker is a clock token at either edge of a line plus its label
package markers

import (
	"regexp"
	"sort"
	"strings"

	"vidqa/internal/core/timecode"
)

// Marker is one recovered question heading.
// TimeText preserves the author's clock text verbatim for display,
// Seconds is the sort and comparison key
type Marker struct {
	TimeText string
	Seconds  int
	Label    string
}

var (
	startRe = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)`)
	endRe   = regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?)$`)
)

// separators stripped from both ends of a label
const sepCutset = " -|.:"

// Extract scans description text line by line and returns markers sorted
// ascending by seconds, ties keeping original line order.
//
// Per line: a clock token anchored at the start wins exclusively; the end
// anchor is only tried when the start match is absent. A line whose label is
// empty after stripping separators contributes nothing, so a bare clock line
// is silently skipped
func Extract(description string) []Marker {
	var out []Marker

	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if loc := startRe.FindStringIndex(line); loc != nil {
			ts := line[loc[0]:loc[1]]
			label := strings.Trim(line[loc[1]:], sepCutset)
			if label != "" {
				if m, ok := build(ts, label); ok {
					out = append(out, m)
				}
			}
			continue
		}

		if loc := endRe.FindStringIndex(line); loc != nil {
			ts := line[loc[0]:loc[1]]
			label := strings.Trim(line[:loc[0]], sepCutset)
			if label != "" {
				if m, ok := build(ts, label); ok {
					out = append(out, m)
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Seconds < out[j].Seconds })
	return out
}

// build parses the clock token and assembles a Marker.
// a token the converter rejects skips the line rather than aborting extraction
func build(ts, label string) (Marker, bool) {
	secs, err := timecode.Parse(ts)
	if err != nil {
		return Marker{}, false
	}
	return Marker{TimeText: ts, Seconds: secs, Label: label}, true
}
