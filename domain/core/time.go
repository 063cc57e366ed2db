package core

import "time"

// Timestamp wraps time.Time with UTC normalization for artifact records.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC timestamp.
func Now() Timestamp {
	return Timestamp{time.Now().UTC()}
}

// NewTimestamp creates a Timestamp from a time.Time, normalized to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

// String formats the timestamp as RFC3339.
func (t Timestamp) String() string {
	return t.Format(time.RFC3339)
}
