// Package session provides the server-side session store. Sessions are keyed
// by an opaque token carried in a cookie; the store holds the principal for
// the lifetime of a login.
package session

import (
	"context"
	"time"

	"jobportal/internal/auth"

	"github.com/google/uuid"
)

// DefaultTTL bounds a session's lifetime when the configuration does not
// override it. The original design had no expiry beyond explicit logout;
// a finite TTL closes that gap.
const DefaultTTL = 7 * 24 * time.Hour

// Store is the session-store contract. Resolve returns (nil, nil) for an
// unknown or expired token; errors are reserved for backend failures.
type Store interface {
	Create(ctx context.Context, p auth.Principal) (string, error)
	Resolve(ctx context.Context, token string) (*auth.Principal, error)
	Refresh(ctx context.Context, token string, p auth.Principal) error
	Destroy(ctx context.Context, token string) error
}

// newToken mints an opaque session token.
func newToken() string {
	return uuid.NewString()
}
