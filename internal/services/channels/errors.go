package channels

import "errors"

// Common errors
var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrInvalidReference = errors.New("invalid channel reference")
)
