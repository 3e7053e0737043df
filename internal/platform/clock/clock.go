package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Stamp renders t in the wire format used by every persisted record.
// Timestamps are stored as strings so they survive JSON round-trips
// without a custom decoder.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
