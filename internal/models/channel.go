package models

import "time"

// Channel is a YouTube channel tracked by the dashboard
type Channel struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title"`
	ThumbnailURL string     `json:"thumbnail_url"`
	HealthScore  float64    `json:"health_score" gorm:"not null;default:0"`
	LastUpdated  *time.Time `json:"last_updated"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Videos       []Video    `json:"videos,omitempty" gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Channel) TableName() string {
	return "channels"
}
