package middleware

import (
	"sync"
	"testing"
	"time"
)

func TestUserGateSerializesSameUser(t *testing.T) {
	g := NewUserGate(time.Minute)
	defer g.Close()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(7, func() error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("same-user concurrency = %d, want 1", maxSeen)
	}
}

func TestUserGateAllowsDifferentUsers(t *testing.T) {
	g := NewUserGate(time.Minute)
	defer g.Close()

	first := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = g.Do(1, func() error {
			close(first)
			<-release
			return nil
		})
	}()
	<-first

	go func() {
		_ = g.Do(2, func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("user 2 blocked behind user 1")
	}
	close(release)
}

func TestUserGateEvictsIdleEntries(t *testing.T) {
	g := NewUserGate(time.Minute)
	defer g.Close()

	_ = g.Do(1, func() error { return nil })
	_ = g.Do(2, func() error { return nil })
	if got := g.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	g.evict(time.Now().Add(2 * time.Minute))
	if got := g.Len(); got != 0 {
		t.Fatalf("Len() after eviction = %d, want 0", got)
	}
}

func TestUserGateKeepsBusyEntries(t *testing.T) {
	g := NewUserGate(time.Minute)
	defer g.Close()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = g.Do(9, func() error {
			close(entered)
			<-release
			return nil
		})
		close(done)
	}()
	<-entered

	g.evict(time.Now().Add(2 * time.Minute))
	if got := g.Len(); got != 1 {
		t.Fatalf("busy entry evicted, Len() = %d", got)
	}
	close(release)
	<-done
}
