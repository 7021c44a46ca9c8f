package nutri

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so derivations are deterministic in tests.
// The location of the returned time defines the user's calendar day.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current local time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
