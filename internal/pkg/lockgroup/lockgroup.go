// Package lockgroup provides per-key mutual exclusion. The change-order-status
// use case locks on the order id so transitions of the same order serialize
// in-process and the status history stays ordered.
package lockgroup

import "sync"

// LockGroup hands out one mutex per key. Locks are created lazily and kept for
// the lifetime of the group; the expected key cardinality (active orders) is
// small enough that no eviction is needed.
type LockGroup struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty LockGroup.
func New() *LockGroup {
	return &LockGroup{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (g *LockGroup) Lock(key string) {
	g.keyLock(key).Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked panics,
// same as sync.Mutex.
func (g *LockGroup) Unlock(key string) {
	g.keyLock(key).Unlock()
}

func (g *LockGroup) keyLock(key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.locks[key]
	if !ok {
		l = &sync.Mutex{}
		g.locks[key] = l
	}
	return l
}
