package scanner

// Status is the terminal state of a file after a run.
type Status string

const (
	// StatusCompliant means a correct header is already present.
	StatusCompliant Status = "compliant"
	// StatusViolating means the header is missing or wrong (check mode).
	StatusViolating Status = "violating"
	// StatusFixed means the header was inserted or replaced (fix mode).
	StatusFixed Status = "fixed"
	// StatusExcluded means the rules exempt the file from enforcement.
	StatusExcluded Status = "excluded"
	// StatusError means the file could not be verified or repaired.
	StatusError Status = "error"
	// StatusInterrupted means the run was cancelled before the file was
	// processed.
	StatusInterrupted Status = "interrupted"
)

// Result is the per-file outcome. Created fresh per run, never persisted.
type Result struct {
	// Path is the scan-root-relative path with forward slashes.
	Path string
	// Status is the file's terminal state.
	Status Status
	// Err carries the per-file failure when Status is StatusError.
	Err error
	// Diff is a unified, human-readable preview of what fix mode would
	// write. Only populated in check mode with diffs enabled.
	Diff string
}

// Report aggregates a whole run. Results are sorted by path regardless of
// processing order.
type Report struct {
	Results     []Result
	Interrupted bool
}

// Counts returns the number of files per status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}

// Failed reports whether the run must exit non-zero: any violation,
// per-file error, or interruption.
func (r *Report) Failed() bool {
	if r.Interrupted {
		return true
	}
	for _, res := range r.Results {
		if res.Status == StatusViolating || res.Status == StatusError {
			return true
		}
	}
	return false
}
