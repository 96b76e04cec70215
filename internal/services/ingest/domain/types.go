// Package domain defines the ingest pipeline types and ports
package domain

import (
	"time"

	"vidqa/internal/core/answers"
)

// Segment re-exports the transcript segment shape used across ports
type Segment = answers.Segment

// Match re-exports the pure slicing output
type Match = answers.Match

// Metadata describes a video's snippet fields
type Metadata struct {
	YouTubeID    string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  *time.Time
}

// Classification labels one match with a category tree entry and tags
type Classification struct {
	Category    string
	Subcategory string
	Tags        []string
}

// ClassifiedMatch pairs a pure Match with optional labels.
// Class stays nil when classification is skipped or fails
type ClassifiedMatch struct {
	Match
	Class *Classification
}

// ProcessResult is the outcome of one full pipeline run for one video.
// It carries string errors only and is terminal once returned
type ProcessResult struct {
	YouTubeID      string   `json:"youtube_id"`
	Success        bool     `json:"success"`
	Title          string   `json:"title,omitempty"`
	QuestionsFound int      `json:"questions_found"`
	QuestionsSaved int      `json:"questions_saved"`
	Error          string   `json:"error,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// CheckItem is one marker preview row returned by Check
type CheckItem struct {
	TimeText string `json:"timestamp"`
	Seconds  int    `json:"seconds"`
	Question string `json:"question"`
}

// CheckResult previews what a full run would extract, without persisting
type CheckResult struct {
	YouTubeID string      `json:"youtube_id"`
	Title     string      `json:"title"`
	Markers   []CheckItem `json:"markers"`
}

// JobStatus is the lifecycle state of an ingest job
type JobStatus string

// job lifecycle states
const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobDone       JobStatus = "done"
	JobFailed     JobStatus = "failed"
)

// Job is one queued unit of ingestion work
type Job struct {
	ID        int64
	YouTubeID string
	Status    JobStatus
	Attempts  int
	LastError string
}

// QueueStats summarizes the job queue by status
type QueueStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Done       int `json:"done"`
	Failed     int `json:"failed"`
}

// BatchError pairs one failed video with its message
type BatchError struct {
	YouTubeID string
	Message   string
}

// BatchStats summarizes one batch run over many videos
type BatchStats struct {
	Total          int
	Processed      int
	Successful     int
	Failed         int
	Skipped        int
	TotalQuestions int
	Errors         []BatchError
}
