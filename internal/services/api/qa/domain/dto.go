// Package domain holds DTOs for qa http and service contracts
package domain

// SearchInput is the input for searching Q&A records
type SearchInput struct {
	Query       string `json:"query,omitempty"       validate:"omitempty,min=2,max=200" example:"infant baptism"`
	Category    string `json:"category,omitempty"    validate:"omitempty,max=100" example:"Theology"`
	Subcategory string `json:"subcategory,omitempty" validate:"omitempty,max=100" example:"Soteriology"`
	Tag         string `json:"tag,omitempty"         validate:"omitempty,max=100" example:"grace"`
	Page        int    `json:"page,omitempty"        validate:"omitempty,min=1" example:"1"`
	PageSize    int    `json:"page_size,omitempty"   validate:"omitempty,min=1,max=100" example:"20"`
}

// RecentInput is the input for fetching recent Q&A records
type RecentInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100" example:"20"`
}

// Record is one searchable question with its answer preview and video link
type Record struct {
	YouTubeID     string   `json:"youtube_id"`
	VideoTitle    string   `json:"video_title"`
	URL           string   `json:"url"`
	Timestamp     string   `json:"timestamp"`
	Seconds       int      `json:"seconds"`
	Question      string   `json:"question"`
	AnswerPreview string   `json:"answer_preview"`
	Category      string   `json:"category,omitempty"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Tag is one tag with its usage count
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryCount aggregates records per category and subcategory
type CategoryCount struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Count       int    `json:"count"`
}
