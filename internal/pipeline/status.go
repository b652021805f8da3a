package pipeline

// StageStatus is the outcome of one pipeline stage.
type StageStatus int

const (
	StatusPending StageStatus = iota // stage never ran
	StatusSkipped                    // work already done, stage short-circuited
	StatusDone                       // stage ran and produced its artifact
	StatusFailed                     // stage ran and failed
)

func (s StageStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSkipped:
		return "skipped"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is a run's terminal state.
type Outcome int

const (
	// Completed means at least one stage did real work and nothing failed.
	Completed Outcome = iota
	// CompletedNoop means every stage skipped: the month was already
	// downloaded, parsed and published.
	CompletedNoop
	// Failed means a stage failed and the run stopped there.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case CompletedNoop:
		return "completed (no-op)"
	case Failed:
		return "failed"
	}
	return "unknown"
}
