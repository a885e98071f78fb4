package engine

import "sync"

// Sink receives outbound events. Methods are called from the engine's run
// goroutine; values passed in are owned by the sink.
type Sink interface {
	Render(Render)
	Error(error)
}

// Latest is a Sink that keeps only the most recent render and error. It is
// safe to read from another goroutine.
type Latest struct {
	mu      sync.Mutex
	render  Render
	fresh   bool
	renders uint64
	err     error
}

// Render stores r, replacing any unread render.
func (l *Latest) Render(r Render) {
	l.mu.Lock()
	l.render = r
	l.fresh = true
	l.renders++
	l.mu.Unlock()
}

// Error stores err.
func (l *Latest) Error(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Take returns the latest render if one arrived since the previous Take.
func (l *Latest) Take() (Render, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return Render{}, false
	}
	l.fresh = false
	return l.render, true
}

// Peek returns the latest render without consuming it.
func (l *Latest) Peek() (Render, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.render, l.renders
}

// Err returns and clears the last reported error.
func (l *Latest) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.err
	l.err = nil
	return err
}
