package oauth

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// StateTTL bounds how long a pending login may sit between the redirect to
// the provider and the callback.
const StateTTL = 10 * time.Minute

// NewState returns the opaque `state` value placed in the authorize URL:
// 64 bits from a CSPRNG rendered as lowercase hex.
func NewState() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return fmt.Sprintf("%016x", binary.BigEndian.Uint64(b[:]))
}

// StateData is what we keep for a pending login keyed by its state value.
type StateData struct {
	Provider Provider `json:"provider"`
}

// StateCache stores pending login state between the initiating redirect and
// the provider callback. Implementations live under storage/.
type StateCache interface {
	Put(ctx context.Context, state string, data StateData, ttl time.Duration) error
	// Take returns and deletes the entry so a state value is accepted once.
	Take(ctx context.Context, state string) (StateData, bool, error)
}
