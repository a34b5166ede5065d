// Package leaktest provides goroutine leak detection helpers for tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker compares goroutine counts before and after a test body.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	// Allow background goroutines to stabilize before counting
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if the goroutine count grew by more than tolerance.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	// Give finished goroutines time to exit
	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	leaked := after - g.before

	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test if it leaks goroutines.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
