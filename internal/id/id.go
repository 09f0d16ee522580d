package id

import "github.com/google/uuid"

// NewSessionID creates a unique server-generated session identifier.
func NewSessionID() string {
	return "session_" + uuid.NewString()
}
