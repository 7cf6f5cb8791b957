package domain

type SortOutcome string

const (
	SortMoved   SortOutcome = "moved"
	SortPlanned SortOutcome = "planned"
	SortFailed  SortOutcome = "failed"
)

// SortEntry records what happened to a single file during a batch sort.
type SortEntry struct {
	Filename    string      `json:"filename" yaml:"filename"`
	Category    string      `json:"category,omitempty" yaml:"category,omitempty"`
	Destination string      `json:"destination,omitempty" yaml:"destination,omitempty"`
	Outcome     SortOutcome `json:"outcome" yaml:"outcome"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type SortReport struct {
	RunID     string      `json:"run_id" yaml:"run_id"`
	SourceDir string      `json:"source_dir" yaml:"source_dir"`
	TargetDir string      `json:"target_dir" yaml:"target_dir"`
	DryRun    bool        `json:"dry_run" yaml:"dry_run"`
	Entries   []SortEntry `json:"entries" yaml:"entries"`
}

func (r SortReport) Count(outcome SortOutcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

type SortOptions struct {
	SourceDir string
	TargetDir string
	DryRun    bool
}
