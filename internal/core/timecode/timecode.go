// Package timecode converts between textual clock values and whole seconds.
// Two shapes are supported: M+:SS and H+:MM:SS
package timecode

import (
	"fmt"
	"strconv"
	"strings"

	perr "vidqa/internal/platform/errors"
)

// Parse converts a clock string to total seconds.
// Three components read as hours, minutes, seconds; two as minutes, seconds.
// Any other component count yields 0 rather than an error; callers must not
// rely on that producing a sensible value.
// Sub-components are not range checked, so "1:99" sums past the hour mark
func Parse(text string) (int, error) {
	parts := strings.Split(text, ":")
	vals := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, perr.InvalidArgf("timecode %q: component %q is not an integer", text, p)
		}
		vals[i] = n
	}
	switch len(vals) {
	case 3:
		return vals[0]*3600 + vals[1]*60 + vals[2], nil
	case 2:
		return vals[0]*60 + vals[1], nil
	default:
		return 0, nil
	}
}

// Format renders seconds as M+:SS, or H+:MM:SS when an hour or more.
// Round-trip equivalence with Parse holds only on Format's own output
func Format(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
