package model

import "time"

// FileResult holds the lint outcome for a single file.
type FileResult struct {
	Path        Path         `yaml:"path"`
	Diagnostics []Diagnostic `yaml:"diagnostics"`
	Fixed       int          `yaml:"fixed,omitempty"`
	Err         error        `yaml:"-"`
	ErrMessage  string       `yaml:"error,omitempty"`
}

// Summary aggregates results for a whole run.
type Summary struct {
	Files       int            `yaml:"files"`
	Diagnostics int            `yaml:"diagnostics"`
	Fixable     int            `yaml:"fixable"`
	Fixed       int            `yaml:"fixed"`
	Errors      int            `yaml:"errors"`
	ByRule      map[string]int `yaml:"by_rule"`
}

// Add folds a file result into the summary.
func (s *Summary) Add(result FileResult) {
	s.Files++
	s.Fixed += result.Fixed

	if result.Err != nil {
		s.Errors++
	}

	if s.ByRule == nil {
		s.ByRule = make(map[string]int)
	}

	for _, d := range result.Diagnostics {
		s.Diagnostics++
		s.ByRule[d.RuleID]++

		if d.Fixable() {
			s.Fixable++
		}
	}
}

// Report is the persisted form of a lint run.
type Report struct {
	Version   int          `yaml:"version"`
	CreatedAt time.Time    `yaml:"created_at"`
	Summary   Summary      `yaml:"summary"`
	Files     []FileResult `yaml:"files"`
}
