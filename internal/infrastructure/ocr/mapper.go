package ocr

import (
	"strings"

	"github.com/papercheck/backend/internal/domain"
)

// MapToFragments converts recognized regions to validation fragments.
// Regions without visible text are dropped; region order is kept.
func MapToFragments(response *domain.OCRResponse) []string {
	if response == nil {
		return nil
	}

	fragments := make([]string, 0, len(response.Regions))
	for _, region := range response.Regions {
		if strings.TrimSpace(region.Text) == "" {
			continue
		}
		fragments = append(fragments, region.Text)
	}

	return fragments
}

// AverageConfidence returns the mean recognition confidence of the regions with text
func AverageConfidence(regions []domain.TextRegion) float64 {
	total := 0.0
	count := 0
	for _, region := range regions {
		if strings.TrimSpace(region.Text) == "" {
			continue
		}
		total += region.Confidence
		count++
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}
