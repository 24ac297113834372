// Package store persists run history: one row per driver invocation plus a
// row per checkpoint file written. Backed by SQLite.
package store

import (
	"context"
	"time"

	"github.com/me/sailfish/internal/cmdline"
)

// Run is one recorded driver invocation.
type Run struct {
	ID         string
	Config     cmdline.RunConfig
	Zones      int
	Iterations int
	FinalTime  float64
	StartedAt  time.Time
	FinishedAt time.Time // zero until FinishRun
}

// CheckpointRecord is one checkpoint file written during a run.
type CheckpointRecord struct {
	RunID     string
	Number    int
	Iteration int
	Time      float64
	Path      string
	SizeBytes int64
	CreatedAt time.Time
}

// Store defines the persistence layer for run history.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	FinishRun(ctx context.Context, id string, iterations int, finalTime float64) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]*Run, error)

	AddCheckpoint(ctx context.Context, rec *CheckpointRecord) error
	ListCheckpoints(ctx context.Context, runID string) ([]*CheckpointRecord, error)

	Close() error
	Migrate(ctx context.Context) error
}
