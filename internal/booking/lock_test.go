package booking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomLocksSerializePerRoom(t *testing.T) {
	locks := NewRoomLocks()

	const workers = 16
	const iterations = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := locks.Lock(7)
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
}

func TestRoomLocksIndependentRooms(t *testing.T) {
	locks := NewRoomLocks()

	// Holding room 1 must not block room 2.
	unlock1 := locks.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := locks.Lock(2)
		unlock2()
		close(done)
	}()
	<-done
}
