package batch

import (
	"fmt"

	"github.com/papercheck/backend/internal/domain"
	"github.com/papercheck/backend/internal/usecase"
)

// Outcome is the verdict for one case
type Outcome struct {
	Case       Case
	Report     *domain.ValidationReport
	Err        error
	Mismatches []string // fields whose verdict disagrees with Case.Expect
}

// Failed reports whether the case errored or disagreed with its expectation
func (o Outcome) Failed() bool {
	return o.Err != nil || len(o.Mismatches) > 0
}

// Summary counts outcomes
type Summary struct {
	Total      int
	AllMatched int
	Failed     int
}

// Run validates every case with the engine, in order
func Run(engine *usecase.ValidationEngine, cases []Case) []Outcome {
	outcomes := make([]Outcome, 0, len(cases))

	for _, c := range cases {
		outcome := Outcome{Case: c}

		report, err := engine.ValidateDetailed(c.Fragments, c.Reference)
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Report = report
		if c.Expect != nil {
			outcome.Mismatches = compare(*c.Expect, report.Result)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// Summarize counts all-matched and failed outcomes
func Summarize(outcomes []Outcome) Summary {
	summary := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Failed() {
			summary.Failed++
		}
		if o.Report != nil && o.Report.Result.AllMatched() {
			summary.AllMatched++
		}
	}
	return summary
}

func compare(want, got domain.ValidationResult) []string {
	var mismatches []string
	if want.Name != got.Name {
		mismatches = append(mismatches, fmt.Sprintf("name: want %v, got %v", want.Name, got.Name))
	}
	if want.Date != got.Date {
		mismatches = append(mismatches, fmt.Sprintf("date: want %v, got %v", want.Date, got.Date))
	}
	if want.Brand != got.Brand {
		mismatches = append(mismatches, fmt.Sprintf("brand: want %v, got %v", want.Brand, got.Brand))
	}
	return mismatches
}
