package sentiment

import "errors"

// Common errors
var (
	ErrNoJSONObject       = errors.New("no JSON object in response")
	ErrEmptyResponse      = errors.New("empty response from classifier")
	ErrClassifierDisabled = errors.New("classifier not configured")
)
