// Package classify labels question and answer pairs with the Gemini API
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vidqa/internal/core/taxonomy"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/logger"
)

const (
	baseURLDefault    = "https://generativelanguage.googleapis.com/v1beta"
	modelDefault      = "gemini-2.0-flash"
	defaultTimeout    = 30 * time.Second
	defaultMaxSnippet = 4000
)

// Classification is one labeling result for a question and answer pair
type Classification struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Tags        []string `json:"tags"`
}

// Options configures the Classifier
type Options struct {
	// APIKey is required; an empty key disables the classifier
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// MaxSnippet bounds how much answer text goes into the prompt
	MaxSnippet int
}

// Classifier calls the generateContent endpoint with a JSON response schema
type Classifier struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New creates a Classifier with sane defaults
func New(o Options) *Classifier {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Model == "" {
		o.Model = modelDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxSnippet <= 0 {
		o.MaxSnippet = defaultMaxSnippet
	}
	return &Classifier{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("classify"),
	}
}

// Enabled reports whether the classifier has credentials to run
func (c *Classifier) Enabled() bool { return c != nil && c.opts.APIKey != "" }

// request/response shapes for generateContent

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var classificationSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "category": {"type": "string"},
    "subcategory": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["category", "subcategory", "tags"]
}`)

// Classify labels one question and answer pair against the taxonomy.
// Callers absorb errors: a failed classification leaves the pair unlabeled
// and never aborts a pipeline run
func (c *Classifier) Classify(
	ctx context.Context,
	question, answer string,
	tax taxonomy.Taxonomy,
) (*Classification, error) {
	if !c.Enabled() {
		return nil, perr.Unavailablef("classifier not configured")
	}

	snippet := answer
	if len(snippet) > c.opts.MaxSnippet {
		snippet = snippet[:c.opts.MaxSnippet]
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: c.prompt(question, snippet, tax)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   classificationSchema,
		},
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "classify marshal failed")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.opts.BaseURL, c.opts.Model, c.opts.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "classify new request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "classify request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "classify status %d body %s", resp.StatusCode, string(tail))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "classify decode failed")
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "classify empty response")
	}

	var cls Classification
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &cls); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "classify result parse failed")
	}
	if !tax.Has(cls.Category, cls.Subcategory) {
		return nil, perr.InvalidArgf("classify result outside taxonomy: %s / %s", cls.Category, cls.Subcategory)
	}
	return &cls, nil
}

// prompt renders the instruction block with the taxonomy inlined
func (c *Classifier) prompt(question, snippet string, tax taxonomy.Taxonomy) string {
	var b strings.Builder
	b.WriteString("You are a classification assistant for a video Q&A database.\n\n")
	b.WriteString("## CATEGORIES\n")
	b.WriteString("Select category and subcategory names EXACTLY as they appear below:\n")
	for _, cat := range tax.Categories {
		b.WriteString("- " + cat.Name + ": " + strings.Join(cat.Subcategories, ", ") + "\n")
	}
	b.WriteString("\n## YOUR TASK\n")
	b.WriteString("Given the question and answer below, provide the best fitting category, ")
	b.WriteString("subcategory, and 2-5 specific searchable tags.\n")
	b.WriteString("The answer text comes from auto generated transcripts and may contain ")
	b.WriteString("sponsor reads and conversational filler; classify the substance.\n\n")
	b.WriteString("## QUESTION\n" + question + "\n\n")
	b.WriteString("## ANSWER\n" + snippet + "\n\n")
	b.WriteString("Respond with valid JSON matching the schema.")
	return b.String()
}
