package booking

import (
	"time"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// Interval is a start/end pair denoting either a candidate booking or
// an existing reservation's occupancy window.  Endpoints compare as
// half-open ranges: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval from raw start/end instants and
// applies the overnight-rollover rule via Normalize.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}.Normalize()
}

// Normalize applies the overnight-rollover rule: when End is not
// after Start the booking is taken to span midnight into the next
// calendar day, so 24 hours are added to End.  A request of
// 22:00–02:00 therefore ends at 02:00 the following day.  The same
// adjustment fires when an operator swaps the two fields by mistake;
// the two cases cannot be told apart from a date+time-of-day pair
// alone.  Normalizing an interval whose End already lies after Start
// is a no-op.
func (iv Interval) Normalize() Interval {
	if !iv.End.After(iv.Start) {
		iv.End = iv.End.Add(24 * time.Hour)
	}
	return iv
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Hours returns the length of the interval in fractional hours,
// e.g. 2.5 for a 2h30m interval.
func (iv Interval) Hours() float64 { return iv.Duration().Hours() }

// Overlaps reports whether two intervals share any instant of time
// under the strict test s1 < e2 && e1 > s2.  Intervals that merely
// touch at an endpoint do not overlap, so back-to-back bookings that
// share an exact boundary are allowed.  The predicate is symmetric
// and also covers full containment of either interval by the other.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// IsAvailable reports whether the candidate interval may be booked
// given the room's existing reservations.  Cancelled reservations are
// skipped; any other reservation overlapping the candidate makes the
// slot unavailable.  An empty reservation list is always available.
// Stored intervals are normalized with the same rollover rule as the
// candidate before comparison.
func IsAvailable(candidate Interval, existing []model.Reservation) bool {
	for _, res := range existing {
		if res.IsCancelled() {
			continue
		}
		occupied := Interval{Start: res.StartAt, End: res.EndAt}.Normalize()
		if Overlaps(candidate, occupied) {
			return false
		}
	}
	return true
}
