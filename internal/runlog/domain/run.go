// Package domain defines the run ledger models: one audit row per CLI run
// plus the per-record failures of publish runs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the terminal state of a pipeline run.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	// RunStatusPartial marks a run that completed with row-level failures.
	RunStatusPartial RunStatus = "PARTIAL"
	RunStatusFailed  RunStatus = "FAILED"
)

// PipelineRun is the audit record of one CLI run.
type PipelineRun struct {
	ID uuid.UUID
	// Command is the CLI subcommand name (e.g., "publish-events").
	Command string
	// Parameters is the JSON-encoded run input, for reproducing a run.
	Parameters string
	Processed  int
	Delivered  int
	Failed     int
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordFailure is one row-level failure of a run.
type RecordFailure struct {
	ID    uuid.UUID
	RunID uuid.UUID
	// RecordRef is the zero-based row index in the run's input object.
	RecordRef   int
	ErrorDetail string
	CreatedAt   time.Time
}
