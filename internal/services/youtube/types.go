package youtube

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrNotFound         = errors.New("not found on youtube")
	ErrInvalidReference = errors.New("invalid channel reference")
	ErrUnavailable      = errors.New("youtube api unavailable")
)

// Order selects the comment thread ordering
type Order string

const (
	OrderTime      Order = "time"
	OrderRelevance Order = "relevance"
)

// ChannelInfo is the channel metadata the dashboard needs
type ChannelInfo struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	ThumbnailURL      string `json:"thumbnail_url"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
	SubscriberCount   int64  `json:"subscriber_count"`
}

// VideoInfo is an upload with its public statistics
type VideoInfo struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel_id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	PublishedAt  time.Time `json:"published_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// CommentInfo is a top-level comment
type CommentInfo struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	Text        string    `json:"text"`
	Author      string    `json:"author"`
	LikeCount   int64     `json:"like_count"`
	PublishedAt time.Time `json:"published_at"`
}

// Source is the read-only view of the video platform used by the pipeline
type Source interface {
	// GetChannel resolves a channel id, @handle or channel URL
	GetChannel(ctx context.Context, ref string) (*ChannelInfo, error)

	// GetRecentVideos returns up to limit of the channel's newest uploads
	GetRecentVideos(ctx context.Context, channelID string, limit int) ([]VideoInfo, error)

	// GetComments returns up to limit top-level comments for a video
	GetComments(ctx context.Context, videoID string, limit int, order Order) ([]CommentInfo, error)
}
