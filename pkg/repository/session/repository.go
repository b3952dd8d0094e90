// Package session holds per-seeker conversation state behind a small
// key-value repository interface, injected at construction.
package session

import (
	"context"
	"errors"

	"mystica/pkg/models"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the whole per-seeker state: profile, visible history, derived
// color associations and the per-upload handprint flags.
type Session struct {
	ID                   string             `json:"id"`
	Profile              models.UserProfile `json:"profile"`
	Messages             []models.Message   `json:"messages,omitempty"`
	ColorAssociations    []string           `json:"color_associations,omitempty"`
	LastUploadedFilename string             `json:"last_uploaded_filename,omitempty"`
	HandprintAnalyzed    bool               `json:"handprint_analyzed,omitempty"`
}

// Repository stores sessions keyed by id. Implementations expire sessions
// after their configured TTL.
type Repository interface {
	// Create allocates a new empty session and returns it.
	Create(ctx context.Context) (Session, error)
	// Get returns the session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Put stores the session wholesale, refreshing its TTL.
	Put(ctx context.Context, s Session) error
	// Delete removes a session before TTL expiration.
	Delete(ctx context.Context, id string) error
}
