package videos

import (
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/aggregate"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

// Progress is one progress event of a running analysis
type Progress struct {
	Processed int `json:"progress"`
	Total     int `json:"total"`
}

// AnalyzeRequest configures one video analysis. Progress may be nil.
type AnalyzeRequest struct {
	VideoID     string
	MaxComments int
	Order       youtube.Order
	Progress    func(Progress)

	// SkipChannelRefresh leaves the channel health score alone; the channel
	// workflow recomputes it once after all of its videos
	SkipChannelRefresh bool
}

// Result is the outcome of a completed video analysis
type Result struct {
	Video                *models.Video           `json:"video"`
	Insights             aggregate.VideoInsights `json:"insights"`
	Distribution         aggregate.Distribution  `json:"distribution"`
	Comparison           *aggregate.Comparison   `json:"comparison"`
	HealthScore          float64                 `json:"health_score"`
	AnalyzedCommentCount int                     `json:"analyzed_comment_count"`
	Outcome              analysis.Outcome        `json:"outcome"`
}

// Detail is the stored view of a video
type Detail struct {
	Video                *models.Video            `json:"video"`
	Distribution         aggregate.Distribution   `json:"distribution"`
	Comparison           *aggregate.Comparison    `json:"comparison"`
	Insights             *aggregate.VideoInsights `json:"insights"`
	AnalyzedCommentCount int                      `json:"analyzed_comment_count"`
}
