package ports

import (
	"context"

	"github.com/aretw0/switchyard/pkg/domain"
)

// SessionStore persists the last navigated path so a user can retry it.
type SessionStore interface {
	// Load retrieves the stored path.
	// A missing or unreadable record is reported as ok == false with a nil
	// error; corruption must never block a fresh session.
	Load(ctx context.Context) (path domain.Path, ok bool, err error)

	// Save overwrites the record with path.
	// Failing to persist is a hard error.
	Save(ctx context.Context, path domain.Path) error
}
