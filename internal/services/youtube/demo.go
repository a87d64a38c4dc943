package youtube

import (
	"context"
	"fmt"
	"time"
)

// DemoChannelID is the id the demo source assigns to non-id references
const DemoChannelID = "demo"

var demoVideos = []VideoInfo{
	{
		ID:           "Ks-_Mh1QhMc",
		Title:        "Your Body Language May Shape Who You Are | Amy Cuddy",
		ThumbnailURL: "https://i.ytimg.com/vi/Ks-_Mh1QhMc/mqdefault.jpg",
		PublishedAt:  time.Date(2012, 10, 1, 10, 0, 0, 0, time.UTC),
		ViewCount:    23000000,
		LikeCount:    410000,
		CommentCount: 12000,
	},
	{
		ID:           "ufJTTcuXVUU",
		Title:        "The power of vulnerability | Brené Brown",
		ThumbnailURL: "https://i.ytimg.com/vi/ufJTTcuXVUU/mqdefault.jpg",
		PublishedAt:  time.Date(2011, 1, 1, 14, 30, 0, 0, time.UTC),
		ViewCount:    19000000,
		LikeCount:    380000,
		CommentCount: 9800,
	},
	{
		ID:           "rrkrvAUbU9Y",
		Title:        "The puzzle of motivation | Dan Pink",
		ThumbnailURL: "https://i.ytimg.com/vi/rrkrvAUbU9Y/mqdefault.jpg",
		PublishedAt:  time.Date(2009, 8, 25, 9, 15, 0, 0, time.UTC),
		ViewCount:    12000000,
		LikeCount:    210000,
		CommentCount: 7100,
	},
}

var demoComments = []struct {
	text   string
	author string
	likes  int64
}{
	{"This is exactly what I needed! Finally proper analytics.", "CreatorFan1", 120},
	{"Not sure about the UI, looks a bit cluttered.", "Critic007", 5},
	{"Can you add support for Instagram soon?", "InstaStar", 45},
	{"Super helpful tool.", "GrowthHacker", 12},
	{"Pricing is too high for small creators.", "SmallTimer", 8},
	{"Semma explanation bro, vera level 🔥", "ChennaiViewer", 64},
	{"Mokka audio quality, could not hear anything", "HeadphoneUser", 3},
	{"Kiraak content anna 😍", "HydFan", 27},
}

// DemoSource serves a fixed demo channel so the dashboard works without an
// API key
type DemoSource struct{}

// NewDemoSource creates the offline source
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// GetChannel returns the demo channel. A plain id reference keeps its id so
// the caller's routes stay consistent.
func (d *DemoSource) GetChannel(_ context.Context, ref string) (*ChannelInfo, error) {
	parsed, err := ParseChannelRef(ref)
	if err != nil {
		return nil, err
	}
	id := DemoChannelID
	if parsed.Kind == RefID {
		id = parsed.Value
	}
	return &ChannelInfo{
		ID:                id,
		Title:             "PulseGrow Demo Channel",
		ThumbnailURL:      "https://api.dicebear.com/7.x/avataaars/svg?seed=PulseGrow",
		UploadsPlaylistID: "demo_uploads_playlist",
	}, nil
}

// DemoVideoID scopes a demo upload id to a channel so that demo channels
// never share videos
func DemoVideoID(channelID, videoID string) string {
	return channelID + "_" + videoID
}

// GetRecentVideos returns the demo uploads with ids scoped to channelID
func (d *DemoSource) GetRecentVideos(_ context.Context, channelID string, limit int) ([]VideoInfo, error) {
	n := min(limit, len(demoVideos))
	if n <= 0 {
		return nil, nil
	}
	videos := make([]VideoInfo, n)
	copy(videos, demoVideos[:n])
	for i := range videos {
		videos[i].ID = DemoVideoID(channelID, videos[i].ID)
		videos[i].ChannelID = channelID
	}
	return videos, nil
}

// GetComments returns the demo comments with ids scoped to videoID
func (d *DemoSource) GetComments(_ context.Context, videoID string, limit int, _ Order) ([]CommentInfo, error) {
	n := len(demoComments)
	if limit > 0 && limit < n {
		n = limit
	}

	base := time.Date(2023, 10, 25, 10, 5, 0, 0, time.UTC)
	comments := make([]CommentInfo, n)
	for i := 0; i < n; i++ {
		c := demoComments[i]
		comments[i] = CommentInfo{
			ID:          fmt.Sprintf("%s_c%d", videoID, i+1),
			VideoID:     videoID,
			Text:        c.text,
			Author:      c.author,
			LikeCount:   c.likes,
			PublishedAt: base.Add(time.Duration(i) * 45 * time.Minute),
		}
	}
	return comments, nil
}
