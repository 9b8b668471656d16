package domain

import "time"

// ReferenceRecord holds the values a user expects to find on the paper
type ReferenceRecord struct {
	Name  string `json:"name" yaml:"name"`
	Date  string `json:"date" yaml:"date"`
	Brand string `json:"brand" yaml:"brand"`
}

// ValidationResult reports which reference fields were corroborated by at least one fragment
type ValidationResult struct {
	Name  bool `json:"name" yaml:"name"`
	Date  bool `json:"date" yaml:"date"`
	Brand bool `json:"brand" yaml:"brand"`
}

// AllMatched reports whether every field was corroborated
func (r ValidationResult) AllMatched() bool {
	return r.Name && r.Date && r.Brand
}

// FieldEvidence points at the first fragment that satisfied a field
type FieldEvidence struct {
	FragmentIndex int    `json:"fragmentIndex"`
	Fragment      string `json:"fragment"`
}

// ValidationEvidence holds per-field evidence; nil means the field was not matched
type ValidationEvidence struct {
	Name  *FieldEvidence `json:"name,omitempty"`
	Date  *FieldEvidence `json:"date,omitempty"`
	Brand *FieldEvidence `json:"brand,omitempty"`
}

// ValidationReport is a ValidationResult together with the evidence behind it
type ValidationReport struct {
	Result   ValidationResult   `json:"result"`
	Evidence ValidationEvidence `json:"evidence"`
}

// TextRegion is a single text region recognized by the OCR service
type TextRegion struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Box        []float64 `json:"box,omitempty"` // x1, y1, x2, y2 in paper coordinates
}

// OCRResponse represents the response from the OCR inference service
type OCRResponse struct {
	PaperDetected bool         `json:"paperDetected"`
	Regions       []TextRegion `json:"regions"`
}

// Extraction is the cached outcome of running OCR on one uploaded image
type Extraction struct {
	ID         string       `json:"extractionId"`
	Digest     string       `json:"digest"`
	Fragments  []string     `json:"fragments"`
	Regions    []TextRegion `json:"regions"`
	Confidence float64      `json:"confidence"` // mean region confidence
	CreatedAt  time.Time    `json:"createdAt"`
}
