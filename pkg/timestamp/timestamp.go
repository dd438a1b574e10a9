// Package timestamp provides standardized ISO 8601 timestamp handling for
// simulation messages.
//
// This package uses RFC 3339 strings with millisecond precision as the
// canonical timestamp format. Messages carry timestamps as strings on the
// wire, and a validated string is preserved verbatim through decode and
// re-encode: no timezone conversion, no reformatting. That keeps round-trips
// byte-stable even for producers that stamp in a local offset.
//
// Zero Value Semantics:
//   - An empty string means "not set"
//   - Functions handle empty values gracefully, returning appropriate defaults
//
// Usage Examples:
//
//	// Current time, canonical form
//	now := timestamp.Now()
//
//	// Validate a wire value
//	if err := timestamp.Validate("2023-01-15T12:30:45.123Z"); err != nil { ... }
//
//	// Convert between string and time.Time
//	t, err := timestamp.Parse("2023-01-15T12:30:45Z")
//	s := timestamp.Format(t)
//
//	// Strictly increasing timestamps for one producer
//	src := timestamp.NewSource()
//	first := src.Next()
//	second := src.Next() // always later than first
package timestamp

import (
	"fmt"
	"sync"
	"time"
)

// canonicalFormat is RFC 3339 with millisecond precision. time.Format drops
// the fractional part when it is zero, which matches the platform's wire
// examples ("2023-01-01T00:00:00Z").
const canonicalFormat = "2006-01-02T15:04:05.999Z07:00"

// maxYear guards against garbage values parsing as absurd dates.
const maxYear = 3000

// Now returns the current UTC time in canonical form.
func Now() string {
	return Format(time.Now())
}

// Format converts a time.Time to the canonical string form.
// Returns an empty string for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Truncate(time.Millisecond).Format(canonicalFormat)
}

// Parse converts an RFC 3339 string to a time.Time. Fractional seconds of
// any precision and numeric zone offsets are accepted.
func Parse(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO 8601 timestamp %q: %w", value, err)
	}
	return t, nil
}

// Validate checks that a string is a well-formed ISO 8601 timestamp within
// a reasonable range. The string itself is not rewritten; validated wire
// values are preserved verbatim.
func Validate(value string) error {
	t, err := Parse(value)
	if err != nil {
		return err
	}
	if y := t.Year(); y < 1 || y > maxYear {
		return fmt.Errorf("timestamp %q outside supported range", value)
	}
	return nil
}

// IsZero checks if a timestamp string is unset.
func IsZero(value string) bool {
	return value == ""
}

// Source produces strictly increasing canonical timestamps for a single
// producer. Messages from one source process must never share or reverse
// creation times, even when the wall clock stalls within one millisecond
// or steps backwards.
type Source struct {
	mu    sync.Mutex
	clock func() time.Time
	last  time.Time
}

// NewSource returns a Source backed by the system clock.
func NewSource() *Source {
	return newSource(time.Now)
}

func newSource(clock func() time.Time) *Source {
	return &Source{clock: clock}
}

// Next returns the next timestamp, always strictly after the previous one.
func (s *Source) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.clock().UTC().Truncate(time.Millisecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t.Format(canonicalFormat)
}

// Last returns the most recently issued timestamp, or the empty string if
// none has been issued yet.
func (s *Source) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Format(s.last)
}
