// Package session keeps the server side of cookie sessions.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the record kept for a logged-in visitor.
type Session struct {
	UserName string `json:"userName"`
}

// Store maps opaque session tokens to session records.
type Store interface {
	// Get returns ErrNotFound when the token is unknown or expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Set stores the session under token for ttl.
	Set(ctx context.Context, token string, s *Session, ttl time.Duration) error

	// Destroy removes the session. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}
