package leave

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Identifiers are opaque hex strings drawn from UUIDv4 randomness; no
// central coordination is needed for uniqueness. Employee ids are the
// short 8-character form used in URLs and forms.

func NewApplicationID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

func NewEmployeeID() string {
	return NewApplicationID()[:8]
}
