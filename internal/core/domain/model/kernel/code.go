package kernel

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewShortCode returns prefix followed by length upper-case hex characters taken from a
// fresh random UUID, e.g. NewShortCode("PKG-", 8) -> "PKG-3F9A01BC". length is capped at 32.
func NewShortCode(prefix string, length int) string {
	id := uuid.New()
	digits := strings.ToUpper(hex.EncodeToString(id[:]))
	if length > len(digits) {
		length = len(digits)
	}
	return prefix + digits[:length]
}
