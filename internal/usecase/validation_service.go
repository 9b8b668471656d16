package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/papercheck/backend/internal/domain"
	"github.com/papercheck/backend/internal/infrastructure/ocr"
)

// ValidationServiceConfig holds configuration for the validation service
type ValidationServiceConfig struct {
	CacheTTL time.Duration
	Engine   EngineConfig
}

// ValidationService runs OCR extractions and validates their fragments against reference records
type ValidationService struct {
	cache     domain.CacheRepository
	extractor domain.TextExtractor
	engine    *ValidationEngine
	cacheTTL  time.Duration
}

// NewValidationService creates a new validation service with dependencies
func NewValidationService(
	cache domain.CacheRepository,
	extractor domain.TextExtractor,
	config ValidationServiceConfig,
) *ValidationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &ValidationService{
		cache:     cache,
		extractor: extractor,
		engine:    NewValidationEngine(config.Engine),
		cacheTTL:  cacheTTL,
	}
}

// Engine returns the validation engine used by the service
func (s *ValidationService) Engine() *ValidationEngine {
	return s.engine
}

// ValidateFragments validates already extracted fragments against a reference record
func (s *ValidationService) ValidateFragments(
	ctx context.Context,
	fragments []string,
	reference domain.ReferenceRecord,
) (*domain.ValidationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.ValidateDetailed(fragments, reference)
}

// Extract runs OCR on an image and caches the extraction.
// Flow: check cache by image digest -> OCR -> map regions to fragments -> cache -> return
func (s *ValidationService) Extract(ctx context.Context, image []byte, contentType string) (*domain.Extraction, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	digest := imageDigest(image)

	// Same image uploaded again: reuse the earlier extraction
	var cachedID string
	if err := s.cache.Get(ctx, digestKey(digest), &cachedID); err == nil {
		if extraction, err := s.GetExtraction(ctx, cachedID); err == nil {
			log.Printf("[EXTRACT] Reusing extraction %s for digest %s", cachedID, digest[:12])
			return extraction, nil
		}
	}

	response, err := s.extractor.ExtractText(ctx, image, contentType)
	if err != nil {
		return nil, err
	}

	fragments := ocr.MapToFragments(response)
	if len(fragments) == 0 {
		return nil, domain.ErrNoTextDetected
	}

	extraction := &domain.Extraction{
		ID:         uuid.NewString(),
		Digest:     digest,
		Fragments:  fragments,
		Regions:    response.Regions,
		Confidence: ocr.AverageConfidence(response.Regions),
		CreatedAt:  time.Now().UTC(),
	}

	// Cache failures are logged, not returned
	if err := s.cache.Set(ctx, extractionKey(extraction.ID), extraction, s.cacheTTL); err != nil {
		log.Printf("[EXTRACT] Failed to cache extraction %s: %v", extraction.ID, err)
	} else if err := s.cache.Set(ctx, digestKey(digest), extraction.ID, s.cacheTTL); err != nil {
		log.Printf("[EXTRACT] Failed to cache digest for %s: %v", extraction.ID, err)
	}

	log.Printf("[EXTRACT] Extraction %s: %d fragments", extraction.ID, len(fragments))
	return extraction, nil
}

// GetExtraction returns a cached extraction by ID
func (s *ValidationService) GetExtraction(ctx context.Context, id string) (*domain.Extraction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed extraction id %q", domain.ErrInvalidRequest, id)
	}

	var extraction domain.Extraction
	if err := s.cache.Get(ctx, extractionKey(id), &extraction); err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, err
	}

	return &extraction, nil
}

// ValidateExtraction validates the fragments of a cached extraction against a reference record
func (s *ValidationService) ValidateExtraction(
	ctx context.Context,
	id string,
	reference domain.ReferenceRecord,
) (*domain.ValidationReport, error) {
	extraction, err := s.GetExtraction(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ValidateFragments(ctx, extraction.Fragments, reference)
}

func imageDigest(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

func extractionKey(id string) string {
	return fmt.Sprintf("extraction:%s", id)
}

func digestKey(digest string) string {
	return fmt.Sprintf("extraction:digest:%s", digest)
}
