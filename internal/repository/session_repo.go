package repository

import (
	"context"

	"github.com/user/cookie-table/internal/entity"
)

// SessionRepository defines the interface for per-session state backing the
// admin UI: the anti-forgery token required on state-changing requests and
// the flash notices carried across redirects.
type SessionRepository interface {
	// SaveToken stores the anti-forgery token for a session, refreshing its
	// expiry.
	SaveToken(ctx context.Context, sessionID, token string) error
	// Token returns the stored anti-forgery token for a session, or an
	// empty string when the session is unknown or expired.
	Token(ctx context.Context, sessionID string) (string, error)
	// PushFlash appends a one-time notice to the session's flash queue.
	PushFlash(ctx context.Context, sessionID string, notice entity.FlashNotice) error
	// PopFlashes drains and returns the session's pending flash notices in
	// insertion order.
	PopFlashes(ctx context.Context, sessionID string) ([]entity.FlashNotice, error)
}
