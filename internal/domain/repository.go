package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored encoded; Get decodes into dest.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextExtractor defines the interface to the OCR collaborator.
// It detects the paper, its text regions and recognizes the text of each region.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, contentType string) (*OCRResponse, error)
}
