package booking

import "sync"

// RoomLocks serializes the check-then-persist sequence of a booking
// per room id.  The engine's availability check and the INSERT of the
// new reservation are two separate operations; without mutual
// exclusion two concurrent callers could both pass the check for
// overlapping intervals and both persist.  Handlers take the room's
// lock around BookRoom plus the repository write to close that race
// within a single process.
//
// Mutexes are created on first use and kept for the lifetime of the
// process; the map is bounded by the number of distinct rooms booked.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// NewRoomLocks returns an empty lock table.
func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[uint64]*sync.Mutex)}
}

// Lock acquires the mutex for the given room, creating it if needed,
// and returns the unlock function.  Typical use:
//
//	unlock := locks.Lock(roomID)
//	defer unlock()
func (l *RoomLocks) Lock(roomID uint64) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
