package domain

import "errors"

var (
	// ErrVisionNotConfigured is returned when no vision API key is set
	ErrVisionNotConfigured = errors.New("vision service not configured")

	// ErrVisionAPIFailure is returned when the vision API request fails
	ErrVisionAPIFailure = errors.New("vision API request failed")

	// ErrNoKeywords is returned when the vision response carries no usable keywords
	ErrNoKeywords = errors.New("vision response contained no keywords")

	// ErrCatalogUnavailable is returned when the catalog cannot be read
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrInvalidImage is returned when an upload is not a usable image
	ErrInvalidImage = errors.New("invalid image upload")
)
