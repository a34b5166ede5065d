package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. Callers holding the mutex for a key
// are serialized against each other; distinct keys never contend.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates an empty LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
