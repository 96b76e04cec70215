// Package domain holds DTOs for videos http and service contracts
package domain

// ListInput is the input for listing videos
type ListInput struct {
	Query    string `json:"query,omitempty"    validate:"omitempty,min=1,max=200" example:"grace"`
	Channel  string `json:"channel,omitempty"  validate:"omitempty,max=200"       example:"Some Channel"`
	Status   string `json:"status,omitempty"   validate:"omitempty,oneof=pending processed failed" example:"processed"`
	Page     int    `json:"page,omitempty"     validate:"omitempty,min=1"         example:"1"`
	PageSize int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=100" example:"20"`
}

// GetInput is the input for fetching one video with its Q&A items
type GetInput struct {
	YouTubeID string `json:"youtube_id" validate:"required,video_id" example:"dQw4w9WgXcQ"`
}

// Video is one row in the video list
type Video struct {
	YouTubeID     string `json:"youtube_id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	ChannelTitle  string `json:"channel_title,omitempty"`
	PublishedAt   string `json:"published_at,omitempty"`
	ProcessedAt   string `json:"processed_at,omitempty"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
}

// QAItem is one timestamped question inside a video detail
type QAItem struct {
	Timestamp     string   `json:"timestamp"`
	Seconds       int      `json:"seconds"`
	Question      string   `json:"question"`
	AnswerPreview string   `json:"answer_preview"`
	Answer        string   `json:"answer"`
	Category      string   `json:"category,omitempty"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// VideoDetail is one video with its extracted Q&A items
type VideoDetail struct {
	Video
	Description string   `json:"description,omitempty"`
	Items       []QAItem `json:"items"`
}
