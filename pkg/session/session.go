// Package session persists a participant's identity between runs.
//
// A session is the stable identity a participant carries into shared
// rooms: a generated id plus the display name and color peers see. The
// Store interface supports Get/Set/Delete with expiration and has three
// backends:
//   - file: the default for the CLI, one JSON file per session
//   - memory: for tests
//   - redis: for relay deployments that share identities across instances
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Session is a participant identity with an expiry.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op where the backend
	// expires keys itself).
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session duration. Identities are long-lived;
// the expiry exists so abandoned ones eventually disappear.
const DefaultTTL = 90 * 24 * time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a session for the given display identity.
func New(name, color string, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        id,
		Name:      name,
		Color:     color,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}
