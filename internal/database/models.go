package database

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run holds metadata about one extraction run.
type Run struct {
	ID              int64
	InputPath       string
	Status          string
	ParagraphCount  int
	ResolutionCount int
	FailureCount    int
	StartedAt       *string
	FinishedAt      *string
}

// RunCounts are the totals recorded when a run finishes.
type RunCounts struct {
	Paragraphs  int
	Resolutions int
	Failures    int
}

// CategoryCount is the number of paragraphs tagged with a thematic category.
type CategoryCount struct {
	Category string
	Count    int
}

// Stats contains aggregate database statistics.
type Stats struct {
	Runs             int
	CompletedRuns    int
	LastRunID        int64
	Paragraphs       int
	ClassifiedParas  int
	ParagraphsCiting int
	Resolutions      int
	Organizations    int
	Failures         int
}
