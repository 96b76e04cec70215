// Package answers aligns time-sorted markers against a transcript and
// produces one windowed answer per marker
package answers

import (
	"strings"

	"vidqa/internal/core/markers"
	"vidqa/internal/core/qatext"
)

// DefaultPreviewLength bounds answer previews when no override is configured
const DefaultPreviewLength = 500

// defaultSegmentDuration pads the final window when the last transcript
// segment carries no duration
const defaultSegmentDuration = 60

// Segment is one timed unit of transcribed speech.
// Start offsets are assumed monotonically non-decreasing by the caller
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// Match is one finished question and answer unit. Classification lives on a
// separate derived record so Match stays immutable after slicing
type Match struct {
	TimeText string
	Seconds  int
	Question string
	Answer   string
	Preview  string
}

// Slice computes a half-open window per marker and concatenates covered
// transcript text into an answer, one Match per marker in input order.
// Markers must already be time-sorted; Slice does not re-sort.
//
// Window end is the next marker's seconds, or for the last marker the final
// segment's start plus duration. Inclusion tests a segment's start only:
// start in [window start, window end). An empty result is valid output for
// empty markers or an empty transcript
func Slice(marks []markers.Marker, transcript []Segment, previewLength int) []Match {
	if len(marks) == 0 || len(transcript) == 0 {
		return nil
	}
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}

	out := make([]Match, 0, len(marks))
	for i, m := range marks {
		start := float64(m.Seconds)

		var end float64
		if i+1 < len(marks) {
			end = float64(marks[i+1].Seconds)
		} else {
			last := transcript[len(transcript)-1]
			dur := last.Duration
			if dur == 0 {
				dur = defaultSegmentDuration
			}
			end = last.Start + dur
		}

		var parts []string
		for _, seg := range transcript {
			if seg.Start >= start && seg.Start < end {
				parts = append(parts, seg.Text)
			}
		}
		answer := strings.Join(parts, " ")

		out = append(out, Match{
			TimeText: m.TimeText,
			Seconds:  m.Seconds,
			Question: m.Label,
			Answer:   answer,
			Preview:  qatext.Preview(answer, previewLength),
		})
	}
	return out
}
