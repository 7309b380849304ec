package logger

import (
	"errors"
	"io"
	"sync"
)

// asyncWriter serializes log line writes to one or more sinks through a
// buffered channel so handlers never block on slow outputs.
type asyncWriter struct {
	mu      sync.Mutex
	outputs []io.Writer

	lines  chan []byte
	flush  chan chan struct{}
	done   chan struct{}
	closed bool
}

var errWriterClosed = errors.New("logger: writer closed")

func newAsyncWriter(outputs []io.Writer, queueBytes int) *asyncWriter {
	queue := queueBytes / 256
	if queue < 64 {
		queue = 64
	}
	w := &asyncWriter{
		outputs: outputs,
		lines:   make(chan []byte, queue),
		flush:   make(chan chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *asyncWriter) loop() {
	defer close(w.done)
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				return
			}
			w.writeAll(line)
		case ack := <-w.flush:
			w.drain()
			close(ack)
		}
	}
}

func (w *asyncWriter) drain() {
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				return
			}
			w.writeAll(line)
		default:
			return
		}
	}
}

func (w *asyncWriter) writeAll(line []byte) {
	for _, out := range w.outputs {
		// Best effort per sink; a failing file must not mute stdout.
		_, _ = out.Write(line)
	}
}

// Write enqueues a line, falling back to a synchronous write when the
// queue is full so log records are never silently dropped.
func (w *asyncWriter) Write(line []byte) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errWriterClosed
	}
	w.mu.Unlock()

	select {
	case w.lines <- line:
		return nil
	default:
		w.writeAll(line)
		return nil
	}
}

// Flush blocks until all queued lines have been written.
func (w *asyncWriter) Flush() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	ack := make(chan struct{})
	select {
	case w.flush <- ack:
		<-ack
		return nil
	case <-w.done:
		return nil
	}
}

// Close stops the writer loop after draining remaining lines.
func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.lines)
	<-w.done
	w.drainRemaining()
	return nil
}

func (w *asyncWriter) drainRemaining() {
	for line := range w.lines {
		w.writeAll(line)
	}
}
