package store

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a lower-case ULID: a millisecond timestamp followed by 80
// random bits, so ids sort by creation time.
func NewID(now time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader)
	return strings.ToLower(id.String())
}
