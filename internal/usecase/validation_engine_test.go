package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/papercheck/backend/internal/domain"
)

func TestNewValidationEngine(t *testing.T) {
	t.Run("uses provided max distance", func(t *testing.T) {
		engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(1)})
		if engine.MaxDistance() != 1 {
			t.Errorf("MaxDistance() = %d, want 1", engine.MaxDistance())
		}
	})

	t.Run("zero is a valid tolerance", func(t *testing.T) {
		engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(0)})
		if engine.MaxDistance() != 0 {
			t.Errorf("MaxDistance() = %d, want 0", engine.MaxDistance())
		}
	})

	t.Run("negative falls back to default", func(t *testing.T) {
		engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(-1)})
		if engine.MaxDistance() != DefaultMaxDistance {
			t.Errorf("MaxDistance() = %d, want %d", engine.MaxDistance(), DefaultMaxDistance)
		}
	})

	t.Run("unset uses default", func(t *testing.T) {
		engine := NewValidationEngine(EngineConfig{})
		if engine.MaxDistance() != DefaultMaxDistance {
			t.Errorf("MaxDistance() = %d, want %d", engine.MaxDistance(), DefaultMaxDistance)
		}

		result, err := engine.Validate([]string{"Brand Netflex"}, domain.ReferenceRecord{Brand: "Netflix"})
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !result.Brand {
			t.Error("Brand = false, want true within the default tolerance")
		}
	})
}

func TestValidate_Scenarios(t *testing.T) {
	testCases := []struct {
		name      string
		fragments []string
		reference domain.ReferenceRecord
		check     func(t *testing.T, got domain.ValidationResult)
	}{
		{
			name:      "brand with trailing punctuation",
			fragments: []string{"Brand Netflix ."},
			reference: domain.ReferenceRecord{Brand: "Netflix"},
			check: func(t *testing.T, got domain.ValidationResult) {
				if !got.Brand {
					t.Error("Brand = false, want true")
				}
			},
		},
		{
			name:      "fuzzy multi-token name",
			fragments: []string{"Name Abdukkadir Pasda"},
			reference: domain.ReferenceRecord{Name: "Abdulkadir Pasa"},
			check: func(t *testing.T, got domain.ValidationResult) {
				if !got.Name {
					t.Error("Name = false, want true")
				}
			},
		},
		{
			name:      "compact date",
			fragments: []string{"date 10102024"},
			reference: domain.ReferenceRecord{Date: "10102024"},
			check: func(t *testing.T, got domain.ValidationResult) {
				if !got.Date {
					t.Error("Date = false, want true")
				}
			},
		},
		{
			name:      "noise does not block other fields",
			fragments: []string{"xyz 99999999", "Brand Netflix"},
			reference: domain.ReferenceRecord{Name: "John", Date: "10102024", Brand: "Netflix"},
			check: func(t *testing.T, got domain.ValidationResult) {
				want := domain.ValidationResult{Name: false, Date: false, Brand: true}
				if got != want {
					t.Errorf("Validate() = %+v, want %+v", got, want)
				}
			},
		},
		{
			name:      "full paper",
			fragments: []string{"date 10102024", "Brand Netflix .", "Name dssd Abdukkadir Pasda"},
			reference: domain.ReferenceRecord{Name: "Abdulkadir Pasda", Date: "10102024", Brand: "Netflix"},
			check: func(t *testing.T, got domain.ValidationResult) {
				if !got.AllMatched() {
					t.Errorf("Validate() = %+v, want all fields matched", got)
				}
			},
		},
		{
			name:      "no fragments",
			fragments: nil,
			reference: domain.ReferenceRecord{Name: "John", Date: "10102024", Brand: "Netflix"},
			check: func(t *testing.T, got domain.ValidationResult) {
				if got != (domain.ValidationResult{}) {
					t.Errorf("Validate() = %+v, want all false", got)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, Validate(tc.fragments, tc.reference, DefaultMaxDistance))
		})
	}
}

func TestValidate_SeparatedReferenceDateNormalizedByEngine(t *testing.T) {
	// The reference date is normalized like every other field, which removes the dashes
	got := Validate([]string{"date 10102024"}, domain.ReferenceRecord{Date: "10-10-2024"}, DefaultMaxDistance)
	if !got.Date {
		t.Error("Date = false, want true once the reference is normalized")
	}

	// Without normalization the separators stay and the date cannot match
	if MatchDate(Normalize("date 10102024"), "10-10-2024") {
		t.Error("MatchDate with raw separated reference = true, want false")
	}
}

func TestValidate_EmptyReferenceFieldsMatchVacuously(t *testing.T) {
	got := Validate([]string{"anything"}, domain.ReferenceRecord{}, DefaultMaxDistance)

	if !got.Name {
		t.Error("Name = false, want true for empty reference name")
	}
	if got.Date {
		t.Error("Date = true, want false: an empty date never equals an extracted token")
	}
}

func TestValidate_Monotonic(t *testing.T) {
	reference := domain.ReferenceRecord{Name: "Abdulkadir Pasa", Date: "10102024", Brand: "Netflix"}
	base := []string{"Brand Netflix .", "date 10102024", "Name Abdukkadir Pasda"}
	noise := []string{"", "xyz 99999999", "!!!", "Hulu", "date 01012023", "name someone else"}

	for i := range base {
		prefix := base[:i+1]
		before := Validate(prefix, reference, DefaultMaxDistance)

		extended := append(append([]string{}, prefix...), noise...)
		after := Validate(extended, reference, DefaultMaxDistance)

		if (before.Name && !after.Name) || (before.Date && !after.Date) || (before.Brand && !after.Brand) {
			t.Errorf("appending noise flipped a flag: before %+v, after %+v", before, after)
		}
	}
}

func TestValidationEngine_ValidateDetailed(t *testing.T) {
	engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2)})

	fragments := []string{"Brand Netflex", "Brand Netflix", "date 10102024"}
	reference := domain.ReferenceRecord{Name: "Abdulkadir Pasa", Date: "10102024", Brand: "Netflix"}

	report, err := engine.ValidateDetailed(fragments, reference)
	if err != nil {
		t.Fatalf("ValidateDetailed() error = %v", err)
	}

	if report.Evidence.Brand == nil || report.Evidence.Brand.FragmentIndex != 0 {
		t.Errorf("Brand evidence = %+v, want first matching fragment (index 0)", report.Evidence.Brand)
	}
	if report.Evidence.Brand != nil && report.Evidence.Brand.Fragment != "Brand Netflex" {
		t.Errorf("Brand evidence fragment = %q, want raw fragment %q", report.Evidence.Brand.Fragment, "Brand Netflex")
	}
	if report.Evidence.Date == nil || report.Evidence.Date.FragmentIndex != 2 {
		t.Errorf("Date evidence = %+v, want index 2", report.Evidence.Date)
	}
	if report.Result.Name || report.Evidence.Name != nil {
		t.Errorf("Name = %v with evidence %+v, want unmatched", report.Result.Name, report.Evidence.Name)
	}
}

func TestValidationEngine_StrictReference(t *testing.T) {
	engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2), StrictReference: true})
	fragments := []string{"Brand Netflix", "date 10102024", "Name John"}

	testCases := []struct {
		name      string
		reference domain.ReferenceRecord
		wantErr   bool
	}{
		{"complete reference", domain.ReferenceRecord{Name: "John", Date: "10102024", Brand: "Netflix"}, false},
		{"empty name", domain.ReferenceRecord{Date: "10102024", Brand: "Netflix"}, true},
		{"punctuation-only date", domain.ReferenceRecord{Name: "John", Date: "--", Brand: "Netflix"}, true},
		{"whitespace brand", domain.ReferenceRecord{Name: "John", Date: "10102024", Brand: " \t"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := engine.Validate(fragments, tc.reference)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidReference) {
					t.Errorf("Validate() error = %v, want ErrInvalidReference", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !result.AllMatched() {
				t.Errorf("Validate() = %+v, want all matched", result)
			}
		})
	}
}

func TestValidationEngine_BijectiveNames(t *testing.T) {
	fragments := []string{"Name Ann"}
	reference := domain.ReferenceRecord{Name: "Ann Anna"}

	permissive := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2)})
	result, err := permissive.Validate(fragments, reference)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !result.Name {
		t.Error("permissive Name = false, want true: one token may satisfy both name tokens")
	}

	bijective := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2), BijectiveNames: true})
	result, err = bijective.Validate(fragments, reference)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if result.Name {
		t.Error("bijective Name = true, want false: one token cannot satisfy two name tokens")
	}
}

func TestValidationEngine_FoldAccents(t *testing.T) {
	fragments := []string{"Name Elodie Durr"}
	reference := domain.ReferenceRecord{Name: "Élodie Dürr"}

	exact := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(0)})
	result, _ := exact.Validate(fragments, reference)
	if result.Name {
		t.Error("Name = true without folding at tolerance 0, want false")
	}

	folding := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(0), FoldAccents: true})
	result, _ = folding.Validate(fragments, reference)
	if !result.Name {
		t.Error("Name = false with accent folding, want true")
	}
}

func TestValidationEngine_DebugLogging(t *testing.T) {
	engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2), EnableDebugLogging: true})

	// Should not panic and should produce the same verdict as without logging
	result, err := engine.Validate([]string{"Brand Netflix"}, domain.ReferenceRecord{Brand: "Netflix"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !result.Brand {
		t.Error("Brand = false, want true")
	}
}

func TestValidationEngine_Concurrent(t *testing.T) {
	engine := NewValidationEngine(EngineConfig{MaxDistance: Tolerance(2), FoldAccents: true, BijectiveNames: true})
	reference := domain.ReferenceRecord{Name: "Abdulkadir Pasa", Date: "10102024", Brand: "Netflix"}
	fragments := []string{"date 10102024", "Brand Netflix .", "Name Abdukkadir Pasda"}

	var wg sync.WaitGroup
	errs := make(chan string, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := engine.Validate(fragments, reference)
			if err != nil || !result.AllMatched() {
				errs <- "concurrent validation did not match all fields"
			}
		}()
	}

	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
