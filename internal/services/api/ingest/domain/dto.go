// Package domain holds DTOs for the ingest http surface
package domain

// CheckInput asks for a marker preview of one video
type CheckInput struct {
	URL string `json:"url" validate:"required,min=11,max=300" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
}

// EnqueueInput queues one video for background processing
type EnqueueInput struct {
	YouTubeID string `json:"youtube_id" validate:"required,video_id" example:"dQw4w9WgXcQ"`
}

// EnqueueOutput reports the created job
type EnqueueOutput struct {
	JobID     int64  `json:"job_id"`
	YouTubeID string `json:"youtube_id"`
	Status    string `json:"status"`
}

// RunInput processes one video synchronously
type RunInput struct {
	URL string `json:"url" validate:"required,min=11,max=300" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
}

// ScanPlaylistInput enqueues every unprocessed video in a playlist
type ScanPlaylistInput struct {
	PlaylistID string `json:"playlist_id" validate:"required,min=2,max=64" example:"PLBV3zSzQPycTqZhWbmm8cgAH6qrBi9an4"`
}

// ScanPlaylistOutput reports how many jobs a scan queued
type ScanPlaylistOutput struct {
	PlaylistID string `json:"playlist_id"`
	Queued     int    `json:"queued"`
}
