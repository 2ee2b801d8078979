package quiz

import "errors"

var (
	// ErrNotFound means the lesson or term does not exist for the requesting user.
	ErrNotFound = errors.New("lesson or term not found")

	// ErrEmptyContent means the term exists but has no notes or questions to
	// generate from.
	ErrEmptyContent = errors.New("no content found for this term")

	// ErrInvalidArgument means the difficulty or count is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEngineUnavailable means the OCR engine is missing or broken on this host.
	ErrEngineUnavailable = errors.New("ocr engine unavailable")

	// ErrConfigMissing means no API key is configured for the generation service.
	ErrConfigMissing = errors.New("generation api key not configured")

	// ErrServiceUnreachable means the generation call failed at the transport
	// level, including the 30 second timeout.
	ErrServiceUnreachable = errors.New("generation service unreachable")

	// ErrServiceError means the generation service answered with a non-success
	// status code.
	ErrServiceError = errors.New("generation service error")
)
