package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// stubDirectory serves hourly rates from a map and reports
// ErrRoomNotFound for unknown ids, like the SQL-backed directory.
type stubDirectory struct {
	rates map[uint64]float64
	err   error
}

func (d *stubDirectory) HourlyRate(_ context.Context, roomID uint64) (float64, error) {
	if d.err != nil {
		return 0, d.err
	}
	rate, ok := d.rates[roomID]
	if !ok {
		return 0, ErrRoomNotFound
	}
	return rate, nil
}

// stubSource returns a fixed reservation list regardless of the
// queried window; the engine filters out non-conflicting rows itself.
type stubSource struct {
	reservations []model.Reservation
	err          error
}

func (s *stubSource) Overlapping(context.Context, uint64, Interval) ([]model.Reservation, error) {
	return s.reservations, s.err
}

func TestBookRoomRejectsOverlap(t *testing.T) {
	// Room 1 costs 50/h and has one confirmed booking 14:00–16:00.
	eng := NewEngine(
		&stubDirectory{rates: map[uint64]float64{1: 50}},
		&stubSource{reservations: []model.Reservation{reserved(day(14, 0), day(16, 0), model.ReservationConfirmed)}},
	)

	_, err := eng.BookRoom(context.Background(), 1, day(15, 0), day(17, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookRoomAcceptsAdjacentSlot(t *testing.T) {
	eng := NewEngine(
		&stubDirectory{rates: map[uint64]float64{1: 50}},
		&stubSource{reservations: []model.Reservation{reserved(day(14, 0), day(16, 0), model.ReservationConfirmed)}},
	)

	q, err := eng.BookRoom(context.Background(), 1, day(16, 0), day(18, 0))
	require.NoError(t, err)
	assert.Equal(t, 100.0, q.Price)
	assert.Equal(t, day(16, 0), q.Interval.Start)
	assert.Equal(t, day(18, 0), q.Interval.End)
}

func TestBookRoomUnknownRoom(t *testing.T) {
	eng := NewEngine(
		&stubDirectory{rates: map[uint64]float64{}},
		&stubSource{},
	)

	_, err := eng.BookRoom(context.Background(), 42, day(14, 0), day(16, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestBookRoomNormalizesOvernightCandidate(t *testing.T) {
	eng := NewEngine(
		&stubDirectory{rates: map[uint64]float64{1: 10}},
		&stubSource{},
	)

	q, err := eng.BookRoom(context.Background(), 1, day(22, 0), day(2, 0))
	require.NoError(t, err)
	assert.Equal(t, 40.0, q.Price) // 4h across midnight at 10/h
	assert.True(t, q.Interval.End.After(q.Interval.Start))
}

func TestBookRoomPassesLookupErrorsThrough(t *testing.T) {
	boom := errors.New("connection reset")

	eng := NewEngine(&stubDirectory{err: boom}, &stubSource{})
	_, err := eng.BookRoom(context.Background(), 1, day(14, 0), day(16, 0))
	assert.ErrorIs(t, err, boom)

	eng = NewEngine(
		&stubDirectory{rates: map[uint64]float64{1: 50}},
		&stubSource{err: boom},
	)
	_, err = eng.BookRoom(context.Background(), 1, day(14, 0), day(16, 0))
	assert.ErrorIs(t, err, boom)
}

func TestBookRoomRejectsNegativeRate(t *testing.T) {
	eng := NewEngine(
		&stubDirectory{rates: map[uint64]float64{1: -5}},
		&stubSource{},
	)

	_, err := eng.BookRoom(context.Background(), 1, day(14, 0), day(16, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
