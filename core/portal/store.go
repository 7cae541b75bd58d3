package portal

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps sessions between requests. Implementations must be safe for concurrent use.
type SessionStore interface {
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, sess Session) error
	Delete(ctx context.Context, id string) error
}

// NewSessionID returns a new random session id.
func NewSessionID() string {
	return uuid.NewString()
}
