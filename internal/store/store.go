package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

// Run is a persisted simulation: the engine output plus its summary.
type Run struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	Policy    scheduler.Policy  `json:"policy"`
	Quantum   int64             `json:"quantum,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Result    *scheduler.Result `json:"result"`
	Summary   report.Summary    `json:"summary"`
}

// NewRun wraps a finished result for storage. label usually names the dataset.
func NewRun(label string, res *scheduler.Result) (*Run, error) {
	summary, err := report.Summarize(res)
	if err != nil {
		return nil, err
	}
	return &Run{
		ID:        "run_" + uuid.New().String(),
		Label:     label,
		Policy:    res.Policy,
		Quantum:   res.Quantum,
		CreatedAt: time.Now().UTC(),
		Result:    res,
		Summary:   summary,
	}, nil
}

// Store defines the persistence layer for simulation runs.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	// GetRun returns nil, nil when the run does not exist.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns the newest runs first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	Close() error
	Migrate(ctx context.Context) error
}
