package skeleton

import "sync"

// RWLock is a reader/writer lock that prefers writers: once a writer is
// waiting, new readers block until every pending writer has finished.
type RWLock struct {
	mu      sync.Mutex
	cond    sync.Cond
	readers int
	writing bool
	pending int
}

func (l *RWLock) init() {
	if l.cond.L == nil {
		l.cond.L = &l.mu
	}
}

// RLock acquires a shared lock.
func (l *RWLock) RLock() {
	l.mu.Lock()
	l.init()
	for l.writing || l.pending > 0 {
		l.cond.Wait()
	}
	l.readers++
	l.mu.Unlock()
}

// RUnlock releases a shared lock.
func (l *RWLock) RUnlock() {
	l.mu.Lock()
	l.init()
	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
	l.mu.Unlock()
}

// Lock acquires the exclusive lock.
func (l *RWLock) Lock() {
	l.mu.Lock()
	l.init()
	l.pending++
	for l.writing || l.readers > 0 {
		l.cond.Wait()
	}
	l.pending--
	l.writing = true
	l.mu.Unlock()
}

// Unlock releases the exclusive lock.
func (l *RWLock) Unlock() {
	l.mu.Lock()
	l.init()
	l.writing = false
	l.cond.Broadcast()
	l.mu.Unlock()
}
