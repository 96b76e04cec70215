// Package qatext cleans and bounds question and answer text
package qatext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	wsRe = regexp.MustCompile(`\s+`)

	// list prefixes like "Q:" or "3)" at the head of a question
	prefixRe = regexp.MustCompile(`^(?i:Q[:.]?\s*|\d+[.)]\s*)`)

	foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// trailing punctuation dropped before appending the ellipsis
const previewCutset = ".,;:!? "

// Normalize collapses whitespace runs to single spaces and trims the result
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}

// CleanQuestion strips list prefixes, normalizes whitespace, and guarantees
// the text ends with terminal punctuation
func CleanQuestion(text string) string {
	if text == "" {
		return ""
	}
	text = prefixRe.ReplaceAllString(text, "")
	text = Normalize(text)
	if text != "" && !strings.ContainsAny(text[len(text)-1:], ".?!") {
		text += "?"
	}
	return text
}

// Preview bounds answer to maxLength characters, cutting back to the last
// space when that space sits past 70% of the limit so words stay whole,
// then appends an ellipsis. Short answers pass through untouched
func Preview(answer string, maxLength int) string {
	if answer == "" {
		return ""
	}
	r := []rune(answer)
	if len(r) <= maxLength {
		return answer
	}

	cut := r[:maxLength]
	lastSpace := -1
	for i, c := range cut {
		if c == ' ' {
			lastSpace = i
		}
	}
	if float64(lastSpace) > float64(maxLength)*0.7 {
		cut = cut[:lastSpace]
	}
	return strings.TrimRight(string(cut), previewCutset) + "..."
}

// Fold lowercases and strips diacritics for search comparisons
func Fold(text string) string {
	out, _, err := transform.String(foldChain, text)
	if err != nil {
		return strings.ToLower(text)
	}
	return strings.ToLower(out)
}
