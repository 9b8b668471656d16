package usecase

import (
	"fmt"
	"log"

	"github.com/papercheck/backend/internal/domain"
)

// EngineConfig holds configuration for the validation engine
type EngineConfig struct {
	MaxDistance        *int // nil or negative means DefaultMaxDistance
	StrictReference    bool // reject empty reference fields instead of matching them vacuously
	BijectiveNames     bool // pair each name token with a distinct fragment token
	FoldAccents        bool
	EnableDebugLogging bool
}

// ValidationEngine checks OCR fragments against a reference record.
// It holds only immutable configuration and is safe for concurrent use.
type ValidationEngine struct {
	maxDistance        int
	strictReference    bool
	bijectiveNames     bool
	foldAccents        bool
	enableDebugLogging bool
}

// NewValidationEngine creates a new validation engine with the given configuration
func NewValidationEngine(config EngineConfig) *ValidationEngine {
	maxDistance := DefaultMaxDistance
	if config.MaxDistance != nil && *config.MaxDistance >= 0 {
		maxDistance = *config.MaxDistance
	}

	return &ValidationEngine{
		maxDistance:        maxDistance,
		strictReference:    config.StrictReference,
		bijectiveNames:     config.BijectiveNames,
		foldAccents:        config.FoldAccents,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Tolerance returns a MaxDistance value for EngineConfig
func Tolerance(maxDistance int) *int {
	return &maxDistance
}

// Validate runs the permissive validation with the given tolerance.
// Empty reference fields match vacuously.
func Validate(fragments []string, reference domain.ReferenceRecord, maxDistance int) domain.ValidationResult {
	engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(maxDistance)})
	return engine.evaluate(fragments, engine.normalizeReference(reference)).Result
}

// MaxDistance returns the edit tolerance in effect
func (e *ValidationEngine) MaxDistance() int {
	return e.maxDistance
}

// Validate reports which reference fields are corroborated by the fragments
func (e *ValidationEngine) Validate(fragments []string, reference domain.ReferenceRecord) (domain.ValidationResult, error) {
	report, err := e.ValidateDetailed(fragments, reference)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return report.Result, nil
}

// ValidateDetailed is Validate plus the first fragment that satisfied each field
func (e *ValidationEngine) ValidateDetailed(fragments []string, reference domain.ReferenceRecord) (*domain.ValidationReport, error) {
	normalized := e.normalizeReference(reference)

	if e.strictReference {
		if err := checkReference(normalized); err != nil {
			return nil, err
		}
	}

	report := e.evaluate(fragments, normalized)

	if e.enableDebugLogging {
		log.Printf("[VALIDATE] %d fragments | name=%v date=%v brand=%v",
			len(fragments), report.Result.Name, report.Result.Date, report.Result.Brand)
	}

	return report, nil
}

// evaluate scans every fragment and OR-accumulates the three field verdicts
func (e *ValidationEngine) evaluate(fragments []string, reference domain.ReferenceRecord) *domain.ValidationReport {
	report := &domain.ValidationReport{}

	for i, fragment := range fragments {
		if report.Result.AllMatched() {
			break
		}

		text := e.normalize(fragment)

		if e.enableDebugLogging {
			log.Printf("[VALIDATE] fragment %d: %q -> %q", i, fragment, text)
		}

		if !report.Result.Name && e.matchName(text, reference.Name) {
			report.Result.Name = true
			report.Evidence.Name = &domain.FieldEvidence{FragmentIndex: i, Fragment: fragment}
		}

		if !report.Result.Date && MatchDate(text, reference.Date) {
			report.Result.Date = true
			report.Evidence.Date = &domain.FieldEvidence{FragmentIndex: i, Fragment: fragment}
		}

		if !report.Result.Brand && TokenMatch(text, reference.Brand, e.maxDistance) {
			report.Result.Brand = true
			report.Evidence.Brand = &domain.FieldEvidence{FragmentIndex: i, Fragment: fragment}
		}
	}

	return report
}

func (e *ValidationEngine) matchName(text, name string) bool {
	if e.bijectiveNames {
		return NameMatchBijective(text, name, e.maxDistance)
	}
	return NameMatch(text, name, e.maxDistance)
}

func (e *ValidationEngine) normalize(text string) string {
	if e.foldAccents {
		text = FoldAccents(text)
	}
	return Normalize(text)
}

func (e *ValidationEngine) normalizeReference(reference domain.ReferenceRecord) domain.ReferenceRecord {
	return domain.ReferenceRecord{
		Name:  e.normalize(reference.Name),
		Date:  e.normalize(reference.Date),
		Brand: e.normalize(reference.Brand),
	}
}

// checkReference rejects normalized reference records with empty fields
func checkReference(reference domain.ReferenceRecord) error {
	switch {
	case reference.Name == "":
		return fmt.Errorf("%w: name is empty", domain.ErrInvalidReference)
	case reference.Date == "":
		return fmt.Errorf("%w: date is empty", domain.ErrInvalidReference)
	case reference.Brand == "":
		return fmt.Errorf("%w: brand is empty", domain.ErrInvalidReference)
	}
	return nil
}
