package skeleton

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// waitPending spins until n writers are queued on l.
func waitPending(t *testing.T, l *RWLock, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		l.mu.Lock()
		got := l.pending
		l.mu.Unlock()
		if got == n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("pending writers = %d, want %d", got, n)
		}
		runtime.Gosched()
	}
}

func TestRWLockPrefersWriters(t *testing.T) {
	var l RWLock
	l.RLock()

	order := make(chan string, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.Lock()
		order <- "writer"
		l.Unlock()
	}()
	waitPending(t, &l, 1)

	go func() {
		defer wg.Done()
		l.RLock()
		order <- "reader"
		l.RUnlock()
	}()

	select {
	case who := <-order:
		t.Fatalf("%s ran while the first reader held the lock", who)
	case <-time.After(20 * time.Millisecond):
	}
	l.RUnlock()
	wg.Wait()
	close(order)

	var got []string
	for who := range order {
		got = append(got, who)
	}
	if len(got) != 2 || got[0] != "writer" || got[1] != "reader" {
		t.Errorf("acquisition order = %v, want [writer reader]", got)
	}
}

func TestRWLockSharedReaders(t *testing.T) {
	var l RWLock
	l.RLock()
	done := make(chan struct{})
	go func() {
		l.RLock()
		l.RUnlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second reader blocked behind the first")
	}
	l.RUnlock()

	l.Lock()
	l.Unlock()
}

func TestReaderDoesNotBlockLoader(t *testing.T) {
	s := New()
	r := s.Reader()
	defer r.Close()

	done := make(chan struct{})
	go func() {
		l := s.Loader()
		l.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Loader blocked behind a Reader")
	}
}
