package types

import (
	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/services/admin"
	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	ChannelService *channels.Service
	VideoService   *videos.Service
	AdminService   *admin.Service
	Metrics        *metrics.Metrics
	Logger         *zap.Logger

	// DefaultMaxComments applies when a video analysis request omits max_comments
	DefaultMaxComments int

	Build BuildInfo
}

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}
