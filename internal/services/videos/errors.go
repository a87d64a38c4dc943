package videos

import "errors"

// ErrVideoNotFound is returned when a video has not been synced locally
var ErrVideoNotFound = errors.New("video not found")
