// Package batch validates recorded OCR fragments against reference records in bulk,
// for regression checks of matching settings.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papercheck/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// Case is one recorded paper: the OCR fragments, the reference record and
// optionally the verdict the case is expected to produce.
type Case struct {
	Name      string                   `yaml:"name"`
	Fragments []string                 `yaml:"fragments"`
	Reference domain.ReferenceRecord   `yaml:"reference"`
	Expect    *domain.ValidationResult `yaml:"expect,omitempty"`
}

// ErrNoCases is returned when a case file holds no cases
var ErrNoCases = errors.New("no cases defined")

// LoadCases parses a YAML list of cases. Unnamed cases are named by position.
func LoadCases(data []byte) ([]Case, error) {
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("error parsing cases: %w", err)
	}

	if len(cases) == 0 {
		return nil, ErrNoCases
	}

	for i := range cases {
		if cases[i].Name == "" {
			cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}

	return cases, nil
}

// LoadCasesFile reads and parses a case file
func LoadCasesFile(path string) ([]Case, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading cases file: %w", err)
	}

	cases, err := LoadCases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cases, nil
}
