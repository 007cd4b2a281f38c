package sender

import (
	"errors"
	"sync"
	"testing"
)

func TestDispatcherDrainsQueuedJobsOnClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})

	done := make(chan struct{}, 8)
	for i := 0; i < 8; i++ {
		err := d.Enqueue(nil, "send.text", "sendMessage", func() error {
			done <- struct{}{}
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	d.Close()
	if got := len(done); got != 8 {
		t.Fatalf("jobs run = %d, want 8", got)
	}
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	d.Close()
	d.Close() // idempotent

	err := d.Enqueue(nil, "send.text", "sendMessage", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("enqueue after close = %v, want ErrQueueClosed", err)
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 2})

	if err := d.Enqueue(nil, "send.text", "sendMessage", func() error {
		return errors.New("bad request (400)")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	d.Close()
	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", got)
	}
}

// Concurrent producers racing Close must never panic with a send on a
// closed channel; late enqueues surface as ErrQueueClosed instead.
func TestDispatcherEnqueueRacesClose(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := NewDispatcher(Options{Workers: 2, QueueSize: 2})

		var wg sync.WaitGroup
		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 25; k++ {
					err := d.Enqueue(nil, "send.text", "sendMessage", func() error { return nil })
					if err != nil && !errors.Is(err, ErrQueueClosed) && !errors.Is(err, ErrQueueFull) {
						t.Errorf("enqueue: %v", err)
						return
					}
				}
			}()
		}

		d.Close()
		wg.Wait()
	}
}
