package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/papercheck/backend/internal/batch"
	"github.com/papercheck/backend/internal/usecase"
)

func main() {
	var (
		casesFile   = flag.String("cases", "", "Path to a YAML file with validation cases (required)")
		maxDistance = flag.Int("max-distance", usecase.DefaultMaxDistance, "Maximum edit distance for name and brand tokens")
		strict      = flag.Bool("strict", false, "Reject cases whose reference has an empty field")
		bijective   = flag.Bool("bijective", false, "Pair each name token with a distinct fragment token")
		foldAccents = flag.Bool("fold-accents", false, "Strip accents before comparing")
		debug       = flag.Bool("debug", false, "Log per-fragment matching decisions")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Parse()

	if *casesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -cases is required")
		flag.Usage()
		os.Exit(1)
	}

	if *maxDistance < 0 {
		fmt.Fprintf(os.Stderr, "Error: -max-distance must not be negative, got %d\n", *maxDistance)
		os.Exit(1)
	}

	cases, err := batch.LoadCasesFile(*casesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := usecase.NewValidationEngine(usecase.EngineConfig{
		MaxDistance:        maxDistance,
		StrictReference:    *strict,
		BijectiveNames:     *bijective,
		FoldAccents:        *foldAccents,
		EnableDebugLogging: *debug,
	})

	outcomes := batch.Run(engine, cases)

	printer := batch.NewPrinter(os.Stdout, *noColor)
	for _, o := range outcomes {
		printer.PrintOutcome(o)
	}

	summary := batch.Summarize(outcomes)
	printer.PrintSummary(summary)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
