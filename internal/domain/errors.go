package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidReference is returned in strict mode when a reference field is empty after normalization
	ErrInvalidReference = errors.New("invalid reference record")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrExtractionNotFound is returned when an extraction ID is unknown or expired
	ErrExtractionNotFound = errors.New("extraction not found")

	// ErrOCRFailure is returned when the OCR service request fails
	ErrOCRFailure = errors.New("OCR service request failed")

	// ErrNoTextDetected is returned when no paper or no readable text was found in the image
	ErrNoTextDetected = errors.New("no text detected in image")

	// ErrUnsupportedMedia is returned for uploads that are not JPEG or PNG images
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
