package models

import "time"

// AnalysisStatus is the per-video lifecycle marker
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisError      AnalysisStatus = "error"
)

// IsTerminal reports whether the analysis has finished, successfully or not
func (s AnalysisStatus) IsTerminal() bool {
	return s == AnalysisCompleted || s == AnalysisError
}

// Video is an upload belonging to a tracked channel
type Video struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	ChannelID      string         `json:"channel_id" gorm:"not null;index"`
	Title          string         `json:"title"`
	ThumbnailURL   string         `json:"thumbnail_url"`
	PublishedAt    time.Time      `json:"published_at" gorm:"index"`
	ViewCount      int64          `json:"view_count"`
	LikeCount      int64          `json:"like_count"`
	CommentCount   int64          `json:"comment_count"`
	SentimentScore float64        `json:"sentiment_score" gorm:"not null;default:0"`
	AnalysisStatus AnalysisStatus `json:"analysis_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AnalysisError  string         `json:"analysis_error,omitempty"`
	AnalyzedAt     *time.Time     `json:"analyzed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Comments       []Comment      `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Video) TableName() string {
	return "videos"
}
