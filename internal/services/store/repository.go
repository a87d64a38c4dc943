// Package store is the GORM persistence layer for channels, videos and
// comments.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("record not found")

// Counts are the row totals reported by the admin stats endpoint
type Counts struct {
	Channels int64
	Videos   int64
	Comments int64
}

// Repository reads and writes the analysis tables. Every method opens its
// own session from the root handle, so it is safe to share across
// goroutines.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertChannel inserts the channel or refreshes its metadata. Health score
// and last_updated are left untouched on update.
func (r *Repository) UpsertChannel(ctx context.Context, channel *models.Channel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "thumbnail_url", "updated_at"}),
	}).Create(channel).Error
	if err != nil {
		return fmt.Errorf("upserting channel: %w", err)
	}
	return nil
}

// QueueVideos upserts video metadata and marks every video processing, in
// one transaction
func (r *Repository) QueueVideos(ctx context.Context, videos []models.Video) error {
	if len(videos) == 0 {
		return nil
	}
	for i := range videos {
		videos[i].AnalysisStatus = models.AnalysisProcessing
		videos[i].AnalysisError = ""
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"channel_id", "title", "thumbnail_url", "published_at",
				"view_count", "like_count", "comment_count",
				"analysis_status", "analysis_error", "updated_at",
			}),
		}).Create(&videos).Error
	})
	if err != nil {
		return fmt.Errorf("queueing videos: %w", err)
	}
	return nil
}

// SaveComments upserts one scored batch in a single transaction. A rerun
// overwrites earlier scores for the same comment ids.
func (r *Repository) SaveComments(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"video_id", "text", "author", "like_count", "published_at",
				"sentiment", "sentiment_score", "sentiment_source",
				"lexicon_sentiment", "lexicon_score",
				"classifier_sentiment", "classifier_score",
				"emoji_detected", "topics", "updated_at",
			}),
		}).Create(&comments).Error
	})
	if err != nil {
		return fmt.Errorf("saving comments: %w", err)
	}
	return nil
}

// GetChannel returns a channel by id
func (r *Repository) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("channel %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting channel: %w", err)
	}
	return &channel, nil
}

// ListChannels returns every channel, most recently updated first
func (r *Repository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return channels, nil
}

// GetVideo returns a video by id
func (r *Repository) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// ListVideos returns a channel's videos, newest first
func (r *Repository) ListVideos(ctx context.Context, channelID string) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("published_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// ListAllVideos returns every video
func (r *Repository) ListAllVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// VideoComments returns the stored comments of a video
func (r *Repository) VideoComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("like_count DESC, id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// CommentsByVideo returns the comments of several videos keyed by video id
func (r *Repository) CommentsByVideo(ctx context.Context, videoIDs []string) (map[string][]models.Comment, error) {
	out := make(map[string][]models.Comment, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("video_id IN ?", videoIDs).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	for _, c := range comments {
		out[c.VideoID] = append(out[c.VideoID], c)
	}
	return out, nil
}

// ChannelComments returns every stored comment across a channel's videos
func (r *Repository) ChannelComments(ctx context.Context, channelID string) ([]models.Comment, error) {
	db := r.db.WithContext(ctx)
	videoIDs := db.Model(&models.Video{}).Select("id").Where("channel_id = ?", channelID)

	var comments []models.Comment
	err := db.Where("video_id IN (?)", videoIDs).Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("listing channel comments: %w", err)
	}
	return comments, nil
}

// SetVideoStatus moves a video to status, recording message for errors
func (r *Repository) SetVideoStatus(ctx context.Context, id string, status models.AnalysisStatus, message string) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(map[string]any{
		"analysis_status": status,
		"analysis_error":  message,
	})
	if result.Error != nil {
		return fmt.Errorf("updating video status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}

// FailVideos marks the given videos as error if they are still processing
// and returns how many were changed
func (r *Repository) FailVideos(ctx context.Context, ids []string, message string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id IN ? AND analysis_status = ?", ids, models.AnalysisProcessing).
		Updates(map[string]any{
			"analysis_status": models.AnalysisError,
			"analysis_error":  message,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failing videos: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FailStaleVideos marks videos that have been processing since before
// cutoff as error and returns how many were changed
func (r *Repository) FailStaleVideos(ctx context.Context, cutoff time.Time, message string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("analysis_status = ? AND updated_at < ?", models.AnalysisProcessing, cutoff).
		Updates(map[string]any{
			"analysis_status": models.AnalysisError,
			"analysis_error":  message,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failing stale videos: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CompleteVideo stores the final score and marks the video completed
func (r *Repository) CompleteVideo(ctx context.Context, id string, score float64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(map[string]any{
		"sentiment_score": models.ClampScore(score),
		"analysis_status": models.AnalysisCompleted,
		"analysis_error":  "",
		"analyzed_at":     at,
	})
	if result.Error != nil {
		return fmt.Errorf("completing video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateChannelHealth stores a channel's health score. A non-nil
// lastUpdated also stamps the channel as freshly analyzed.
func (r *Repository) UpdateChannelHealth(ctx context.Context, id string, score float64, lastUpdated *time.Time) error {
	updates := map[string]any{"health_score": models.ClampScore(score)}
	if lastUpdated != nil {
		updates["last_updated"] = *lastUpdated
	}
	result := r.db.WithContext(ctx).Model(&models.Channel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating channel health: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("channel %s: %w", id, ErrNotFound)
	}
	return nil
}

// Counts returns row totals for every table
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Channel{}).Count(&c.Channels).Error; err != nil {
		return c, fmt.Errorf("counting channels: %w", err)
	}
	if err := db.Model(&models.Video{}).Count(&c.Videos).Error; err != nil {
		return c, fmt.Errorf("counting videos: %w", err)
	}
	if err := db.Model(&models.Comment{}).Count(&c.Comments).Error; err != nil {
		return c, fmt.Errorf("counting comments: %w", err)
	}
	return c, nil
}

// Reset deletes all comments, videos and channels in one transaction
func (r *Repository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Comment{}, &models.Video{}, &models.Channel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("reset %T: %w", model, err)
			}
		}
		return nil
	})
}
