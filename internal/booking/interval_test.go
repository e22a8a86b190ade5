package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// day builds a UTC timestamp on 2024-06-15 at the given clock time.
func day(hour, min int) time.Time {
	return time.Date(2024, 6, 15, hour, min, 0, 0, time.UTC)
}

func TestNormalizeIsIdempotentWhenEndAfterStart(t *testing.T) {
	iv := Interval{Start: day(14, 0), End: day(16, 0)}
	got := iv.Normalize()
	assert.Equal(t, iv, got)
	assert.Equal(t, got, got.Normalize())
}

func TestNormalizeRollsOverMidnight(t *testing.T) {
	// 22:00–02:00 reads as ending 02:00 the next day.
	got := NewInterval(day(22, 0), day(2, 0))
	require.Equal(t, day(22, 0), got.Start)
	require.Equal(t, time.Date(2024, 6, 16, 2, 0, 0, 0, time.UTC), got.End)
	assert.Equal(t, 4.0, got.Hours())
}

func TestNormalizeTreatsEqualEndpointsAsNextDay(t *testing.T) {
	got := NewInterval(day(10, 0), day(10, 0))
	assert.Equal(t, 24.0, got.Hours())
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			name: "disjoint",
			a:    Interval{day(8, 0), day(9, 0)},
			b:    Interval{day(12, 0), day(13, 0)},
			want: false,
		},
		{
			name: "touching endpoints do not overlap",
			a:    Interval{day(14, 0), day(16, 0)},
			b:    Interval{day(16, 0), day(18, 0)},
			want: false,
		},
		{
			name: "partial overlap",
			a:    Interval{day(14, 0), day(16, 0)},
			b:    Interval{day(15, 0), day(17, 0)},
			want: true,
		},
		{
			name: "full containment",
			a:    Interval{day(10, 0), day(18, 0)},
			b:    Interval{day(12, 0), day(13, 0)},
			want: true,
		},
		{
			name: "identical",
			a:    Interval{day(10, 0), day(12, 0)},
			b:    Interval{day(10, 0), day(12, 0)},
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			// the predicate is symmetric
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a))
		})
	}
}

func reserved(start, end time.Time, status string) model.Reservation {
	return model.Reservation{RoomID: 1, StartAt: start, EndAt: end, Status: status}
}

func TestIsAvailable(t *testing.T) {
	cases := []struct {
		name      string
		candidate Interval
		existing  []model.Reservation
		want      bool
	}{
		{
			name:      "no reservations",
			candidate: Interval{day(14, 0), day(16, 0)},
			want:      true,
		},
		{
			name:      "back to back is allowed",
			candidate: Interval{day(16, 0), day(18, 0)},
			existing:  []model.Reservation{reserved(day(14, 0), day(16, 0), model.ReservationConfirmed)},
			want:      true,
		},
		{
			name:      "partial overlap rejected",
			candidate: Interval{day(15, 0), day(17, 0)},
			existing:  []model.Reservation{reserved(day(14, 0), day(16, 0), model.ReservationConfirmed)},
			want:      false,
		},
		{
			name:      "candidate inside reservation rejected",
			candidate: Interval{day(12, 0), day(13, 0)},
			existing:  []model.Reservation{reserved(day(10, 0), day(18, 0), model.ReservationPending)},
			want:      false,
		},
		{
			name:      "reservation inside candidate rejected",
			candidate: Interval{day(10, 0), day(18, 0)},
			existing:  []model.Reservation{reserved(day(12, 0), day(13, 0), model.ReservationPending)},
			want:      false,
		},
		{
			name:      "cancelled reservation is ignored",
			candidate: Interval{day(15, 0), day(17, 0)},
			existing:  []model.Reservation{reserved(day(14, 0), day(16, 0), model.ReservationCancelled)},
			want:      true,
		},
		{
			name:      "stored overnight interval is normalized before comparison",
			candidate: Interval{day(23, 0), time.Date(2024, 6, 16, 1, 0, 0, 0, time.UTC)},
			existing:  []model.Reservation{reserved(day(22, 0), day(2, 0), model.ReservationConfirmed)},
			want:      false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAvailable(tc.candidate, tc.existing))
		})
	}
}
