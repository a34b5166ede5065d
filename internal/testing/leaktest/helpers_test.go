package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WithTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		<-done
	}()

	time.Sleep(20 * time.Millisecond)

	checker.Check(2)
	close(done)
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(5 * time.Millisecond)
			}()
		}
		wg.Wait()
	})
}
