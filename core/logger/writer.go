package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fanoutWriter duplicates each log line to one or more buffered sinks.
// Writes are serialized; lines are flushed eagerly so a crash loses at
// most the line being written.
type fanoutWriter struct {
	mu       sync.Mutex
	sinks    []*bufio.Writer
	closed   bool
	writeErr error
}

func newFanoutWriter(writers []io.Writer, bufSize int) *fanoutWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
	}
	return &fanoutWriter{sinks: sinks}
}

// Write copies the line to every sink. The first write error is sticky
// and reported by subsequent calls.
func (w *fanoutWriter) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("logger: writer closed")
	}
	if w.writeErr != nil {
		return w.writeErr
	}
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			w.writeErr = err
			return err
		}
		if err := sink.Flush(); err != nil {
			w.writeErr = err
			return err
		}
	}
	return nil
}

// Flush forces buffered content out of every sink.
func (w *fanoutWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes all sinks and marks the writer unusable.
func (w *fanoutWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return w.writeErr
}
