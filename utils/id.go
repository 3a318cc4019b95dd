package utils

import (
	"github.com/google/uuid"
)

// NewRequestID returns a random UUID.
func NewRequestID() string {
	return uuid.NewString()
}

// RequestID keeps a caller-supplied X-Request-ID when it is a UUID, otherwise mints one.
func RequestID(incoming string) string {
	if id, err := uuid.Parse(incoming); err == nil {
		return id.String()
	}
	return NewRequestID()
}
