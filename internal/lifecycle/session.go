// Package lifecycle computes the derived membership state of the club:
// which academic session a date belongs to, whether an inscription is
// current, whether a member is new, and whether an event is over.
//
// Every function takes its reference date explicitly. Nothing here reads
// the wall clock or touches storage.
package lifecycle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionStartMonth is the month every session starts in.
const SessionStartMonth = time.September

// ErrInvalidLabel is returned by ParseLabel for anything that is not "Y-(Y+1)".
var ErrInvalidLabel = errors.New("invalid session label")

// Session is an academic session, Sep 1 of Year up to (excluding) Sep 1 of Year+1.
type Session struct {
	Year int
}

// SessionOf returns the session containing d, evaluated in d's location.
func SessionOf(d time.Time) Session {
	if d.Month() < SessionStartMonth {
		return Session{Year: d.Year() - 1}
	}
	return Session{Year: d.Year()}
}

// Current is SessionOf(ref). It exists so call sites read like the rule they apply.
func Current(ref time.Time) Session {
	return SessionOf(ref)
}

// SessionStarting returns the session whose start year is year.
func SessionStarting(year int) Session {
	return Session{Year: year}
}

// Start is Sep 1 of the start year, as UTC midnight.
func (s Session) Start() time.Time {
	return time.Date(s.Year, SessionStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// End is the exclusive upper bound: the next session's start.
func (s Session) End() time.Time {
	return s.Next().Start()
}

// Next returns the following session.
func (s Session) Next() Session { return Session{Year: s.Year + 1} }

// Prev returns the preceding session.
func (s Session) Prev() Session { return Session{Year: s.Year - 1} }

// Before reports whether s started strictly before o.
func (s Session) Before(o Session) bool { return s.Year < o.Year }

// Contains reports whether the civil date of t falls in [Start, End).
func (s Session) Contains(t time.Time) bool {
	d := civil(t)
	return !d.Before(s.Start()) && d.Before(s.End())
}

// Label renders the session as "2023-2024".
func (s Session) Label() string {
	return fmt.Sprintf("%d-%d", s.Year, s.Year+1)
}

func (s Session) String() string { return s.Label() }

// ParseLabel parses "2023-2024". The second year must follow the first.
func ParseLabel(label string) (Session, error) {
	first, second, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	y1, err := strconv.Atoi(first)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	y2, err := strconv.Atoi(second)
	if err != nil || y2 != y1+1 {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return Session{Year: y1}, nil
}

// IsCurrent reports whether the session stored for an inscription is the
// session containing ref. stored may be any date inside the session; it is
// tested against the half-open span of the current session.
func IsCurrent(stored time.Time, ref time.Time) bool {
	return Current(ref).Contains(stored)
}

// IsNew reports whether none of the given inscription sessions started
// before the current session. It changes value every Sep 1, so callers
// must compute it on read.
func IsNew(sessions []time.Time, ref time.Time) bool {
	firstDay := Current(ref).Start()
	for _, s := range sessions {
		if civil(s).Before(firstDay) {
			return false
		}
	}
	return true
}

// Today returns the civil date of now in loc, encoded as UTC midnight.
// Stored dates use the same encoding, so comparisons ignore offsets.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// civil drops the clock and location of t, keeping its calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
