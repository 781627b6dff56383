package lifecycle

import "time"

// Span is the time an event occupies. End is nil for single-day events.
type Span struct {
	Start time.Time
	End   *time.Time
}

// EffectiveEnd is End when set, otherwise Start.
func (s Span) EffectiveEnd() time.Time {
	if s.End != nil {
		return *s.End
	}
	return s.Start
}

// IsPassed reports whether the event ended strictly before ref.
func IsPassed(s Span, ref time.Time) bool {
	return s.EffectiveEnd().Before(ref)
}

// IsUpcoming is the listing predicate: start >= ref OR end >= ref.
// A nil End never satisfies its half of the disjunction.
func IsUpcoming(s Span, ref time.Time) bool {
	if !s.Start.Before(ref) {
		return true
	}
	return s.End != nil && !s.End.Before(ref)
}

// Spanned is implemented by anything with an event span.
type Spanned interface {
	EventSpan() Span
}

// Upcoming keeps the events matching IsUpcoming, preserving order.
func Upcoming[E Spanned](events []E, ref time.Time) []E {
	out := make([]E, 0, len(events))
	for _, e := range events {
		if IsUpcoming(e.EventSpan(), ref) {
			out = append(out, e)
		}
	}
	return out
}
