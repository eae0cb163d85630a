// Package state persists the history of builds so that unchanged
// configurations can be skipped and past runs inspected.
package state

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// ErrNotFound indicates no matching build record exists.
var ErrNotFound = stderrors.New("build record not found")

// Status is the outcome of a build.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// BuildRecord is one entry of the build history.
type BuildRecord struct {
	ID          string          `json:"id"`
	Snapshot    string          `json:"snapshot"`
	ContentHash string          `json:"contentHash,omitempty"`
	Targets     []config.Target `json:"targets"`
	Status      Status          `json:"status"`
	Files       []string        `json:"files,omitempty"`
	PageCount   int             `json:"pageCount"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  time.Time       `json:"finishedAt"`
}

// NewRecord starts a record with a fresh build id.
func NewRecord(snapshot string, targets []config.Target) BuildRecord {
	return BuildRecord{
		ID:        uuid.NewString(),
		Snapshot:  snapshot,
		Targets:   targets,
		StartedAt: time.Now().UTC(),
	}
}

// Duration returns the wall time of the build.
func (r BuildRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store defines the interface for persisting and retrieving build records.
type Store interface {
	// Record inserts or replaces a build record.
	Record(ctx context.Context, rec BuildRecord) error

	// Latest returns the newest successful build that emitted target.
	Latest(ctx context.Context, target config.Target) (*BuildRecord, error)

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]BuildRecord, error)

	// Close closes the store and releases resources.
	Close() error
}
