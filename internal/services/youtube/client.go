package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/killallgit/pulsegrow-api/internal/services/cache"
)

// Config holds YouTube Data API settings
type Config struct {
	APIKey      string
	Endpoint    string
	Timeout     time.Duration
	PageSize    int64
	MaxComments int
	CacheTTL    time.Duration
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		c.PageSize = 100
	}
	if c.MaxComments <= 0 {
		c.MaxComments = 500
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 6 * time.Hour
	}
}

// Client implements Source on the YouTube Data API v3
type Client struct {
	svc    *yt.Service
	config Config
	cache  cache.Cache
	logger *zap.Logger
}

// NewClient creates an API client. Channel lookups are cached in lookups
// when it is non-nil.
func NewClient(ctx context.Context, cfg Config, lookups cache.Cache, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube API key is required")
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{
		svc:    svc,
		config: cfg,
		cache:  lookups,
		logger: logger.Named("youtube"),
	}, nil
}

// GetChannel resolves ref and returns the channel's metadata
func (c *Client) GetChannel(ctx context.Context, ref string) (*ChannelInfo, error) {
	parsed, err := ParseChannelRef(ref)
	if err != nil {
		return nil, err
	}

	key := "channel:" + parsed.String()
	if info, ok := c.cachedChannel(ctx, key); ok {
		return info, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	call := c.svc.Channels.List([]string{"snippet", "contentDetails", "statistics"}).Context(ctx)
	switch parsed.Kind {
	case RefHandle:
		call = call.ForHandle(parsed.Value)
	case RefUsername:
		call = call.ForUsername(parsed.Value)
	default:
		call = call.Id(parsed.Value)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, c.apiError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", ref, ErrNotFound)
	}

	info := toChannelInfo(resp.Items[0])
	c.storeChannel(ctx, key, info)
	if parsed.Kind != RefID {
		c.storeChannel(ctx, "channel:"+ChannelRef{Kind: RefID, Value: info.ID}.String(), info)
	}
	return info, nil
}

// GetRecentVideos returns the channel's newest uploads with statistics, in
// upload playlist order (newest first)
func (c *Client) GetRecentVideos(ctx context.Context, channelID string, limit int) ([]VideoInfo, error) {
	if limit <= 0 {
		return nil, nil
	}
	if limit > 50 {
		limit = 50
	}

	channel, err := c.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.UploadsPlaylistID == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	items, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(channel.UploadsPlaylistID).
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.apiError("playlistItems.list", err)
	}

	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.apiError("videos.list", err)
	}

	byID := make(map[string]*yt.Video, len(resp.Items))
	for _, v := range resp.Items {
		byID[v.Id] = v
	}

	videos := make([]VideoInfo, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		info := toVideoInfo(v)
		if info.ChannelID == "" {
			info.ChannelID = channel.ID
		}
		videos = append(videos, info)
	}
	return videos, nil
}

// GetComments pages through top-level comment threads until limit is
// reached. limit is capped at the configured maximum. Videos with comments
// disabled yield no comments.
func (c *Client) GetComments(ctx context.Context, videoID string, limit int, order Order) ([]CommentInfo, error) {
	if limit <= 0 || limit > c.config.MaxComments {
		limit = c.config.MaxComments
	}
	if order == "" {
		order = OrderTime
	}

	comments := make([]CommentInfo, 0, min(limit, int(c.config.PageSize)))
	pageToken := ""
	for len(comments) < limit {
		pageSize := min(c.config.PageSize, int64(limit-len(comments)))

		resp, err := c.commentPage(ctx, videoID, pageSize, order, pageToken)
		if err != nil {
			if isCommentsDisabled(err) {
				c.logger.Info("Comments disabled", zap.String("video_id", videoID))
				return comments, nil
			}
			return nil, c.apiError("commentThreads.list", err)
		}

		for _, thread := range resp.Items {
			if len(comments) == limit {
				break
			}
			if info, ok := toCommentInfo(videoID, thread); ok {
				comments = append(comments, info)
			}
		}

		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.Debug("Fetched comments",
		zap.String("video_id", videoID),
		zap.Int("count", len(comments)),
		zap.Int("limit", limit))
	return comments, nil
}

func (c *Client) commentPage(ctx context.Context, videoID string, size int64, order Order, token string) (*yt.CommentThreadListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	call := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(size).
		Order(string(order)).
		TextFormat("plainText").
		Context(ctx)
	if token != "" {
		call = call.PageToken(token)
	}
	return call.Do()
}

func (c *Client) cachedChannel(ctx context.Context, key string) (*ChannelInfo, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, ok := c.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var info ChannelInfo
	if err := json.Unmarshal(data, &info); err != nil {
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}
	return &info, true
}

func (c *Client) storeChannel(ctx context.Context, key string, info *ChannelInfo) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.config.CacheTTL); err != nil {
		c.logger.Warn("Failed to cache channel", zap.String("key", key), zap.Error(err))
	}
}

func (c *Client) apiError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func isCommentsDisabled(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == "commentsDisabled" {
			return true
		}
	}
	return false
}

func toChannelInfo(ch *yt.Channel) *ChannelInfo {
	info := &ChannelInfo{ID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
		info.ThumbnailURL = thumbnailURL(ch.Snippet.Thumbnails, false)
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		info.UploadsPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	if ch.Statistics != nil {
		info.SubscriberCount = int64(ch.Statistics.SubscriberCount)
	}
	return info
}

func toVideoInfo(v *yt.Video) VideoInfo {
	info := VideoInfo{ID: v.Id}
	if v.Snippet != nil {
		info.ChannelID = v.Snippet.ChannelId
		info.Title = v.Snippet.Title
		info.ThumbnailURL = thumbnailURL(v.Snippet.Thumbnails, true)
		info.PublishedAt = parseTime(v.Snippet.PublishedAt)
	}
	if v.Statistics != nil {
		info.ViewCount = int64(v.Statistics.ViewCount)
		info.LikeCount = int64(v.Statistics.LikeCount)
		info.CommentCount = int64(v.Statistics.CommentCount)
	}
	return info
}

func toCommentInfo(videoID string, thread *yt.CommentThread) (CommentInfo, bool) {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		return CommentInfo{}, false
	}
	top := thread.Snippet.TopLevelComment
	if top.Snippet == nil {
		return CommentInfo{}, false
	}

	id := top.Id
	if id == "" {
		id = thread.Id
	}
	text := top.Snippet.TextOriginal
	if text == "" {
		text = top.Snippet.TextDisplay
	}
	likes := top.Snippet.LikeCount
	if likes < 0 {
		likes = 0
	}

	return CommentInfo{
		ID:          id,
		VideoID:     videoID,
		Text:        text,
		Author:      top.Snippet.AuthorDisplayName,
		LikeCount:   likes,
		PublishedAt: parseTime(top.Snippet.PublishedAt),
	}, id != ""
}

func thumbnailURL(t *yt.ThumbnailDetails, preferMedium bool) string {
	if t == nil {
		return ""
	}
	if preferMedium && t.Medium != nil {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	if t.Medium != nil {
		return t.Medium.Url
	}
	return ""
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewSource returns the API client, or the demo source when no API key is
// configured
func NewSource(ctx context.Context, cfg Config, lookups cache.Cache, logger *zap.Logger) (Source, error) {
	if cfg.APIKey == "" {
		if logger != nil {
			logger.Warn("No YouTube API key configured, serving demo data")
		}
		return NewDemoSource(), nil
	}
	return NewClient(ctx, cfg, lookups, logger)
}
