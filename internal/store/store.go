// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/ashureev/learnzverse/internal/domain"
)

// ErrStorageUnavailable is wrapped by every error that comes from the backing database.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Repository defines the interface for persisting tutoring sessions and progress.
type Repository interface {
	// SaveSession appends a session record and bumps the progress counter
	// for its subject. Both writes commit together or not at all.
	SaveSession(ctx context.Context, record *domain.SessionRecord) error

	// RecentSessions returns up to limit records, most recent first.
	RecentSessions(ctx context.Context, limit int) ([]*domain.SessionRecord, error)

	// GetProgress returns the progress record for a subject, or nil if none exists.
	GetProgress(ctx context.Context, subject string) (*domain.ProgressRecord, error)

	// ListProgress returns all progress records ordered by subject.
	ListProgress(ctx context.Context) ([]*domain.ProgressRecord, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
