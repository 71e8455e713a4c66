package assist

import "errors"

var (
	// ErrEmptyPrompt indicates a chat request without a prompt.
	ErrEmptyPrompt = errors.New("prompt is required")
	// ErrMissingAPIKey indicates no API key was supplied or configured.
	ErrMissingAPIKey = errors.New("no API key supplied or configured")
)
