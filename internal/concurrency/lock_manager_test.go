package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeyReturnsSameMutex(t *testing.T) {
	lm := NewLockManager()

	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestLockManager_SerializesPerKey(t *testing.T) {
	lm := NewLockManager()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := lm.GetLock("counter")
			lock.Lock()
			defer lock.Unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
