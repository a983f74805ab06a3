// Package scheduler provides the delayed-callback capability used by the
// enrollment engine.
//
// Callbacks never run on a timer goroutine. Loop hands fired tokens to the
// event loop, which calls Dispatch; Manual runs them inside Advance. Either
// way a callback runs on the same goroutine that calls Cancel, so once
// Cancel returns the callback can no longer run.
package scheduler

import (
	"sync"
	"time"
)

// Token identifies one scheduled callback. The zero Token is never issued.
type Token uint64

// Loop schedules callbacks against the wall clock.
type Loop struct {
	mu      sync.Mutex
	next    Token
	timers  map[Token]*loopTimer
	fired   chan Token
	done    chan struct{}
	sending sync.WaitGroup // timer goroutines between the closed check and the send
	closed  bool
}

type loopTimer struct {
	timer *time.Timer
	fn    func()
}

// NewLoop creates a wall-clock scheduler. buffer sizes the fired channel;
// the timer goroutines block on it rather than drop a token, until Close.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 16
	}
	return &Loop{
		timers: make(map[Token]*loopTimer),
		fired:  make(chan Token, buffer),
		done:   make(chan struct{}),
	}
}

// Schedule arms fn to be dispatched after delay.
func (l *Loop) Schedule(delay time.Duration, fn func()) Token {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	tok := l.next
	if l.closed {
		return tok
	}
	l.timers[tok] = &loopTimer{
		fn: fn,
		timer: time.AfterFunc(delay, func() { l.post(tok) }),
	}
	return tok
}

// post hands tok to the event loop unless the loop is closing.
func (l *Loop) post(tok Token) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.sending.Add(1)
	l.mu.Unlock()
	defer l.sending.Done()

	select {
	case l.fired <- tok:
	case <-l.done:
	}
}

// Cancel disarms tok. It reports whether tok was still armed.
func (l *Loop) Cancel(tok Token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.timers[tok]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(l.timers, tok)
	return true
}

// Fired delivers tokens whose delay elapsed. Pass each to Dispatch. The
// channel is closed by Close.
func (l *Loop) Fired() <-chan Token {
	return l.fired
}

// Dispatch runs the callback for tok if it is still armed. It must be
// called from the event loop goroutine.
func (l *Loop) Dispatch(tok Token) bool {
	l.mu.Lock()
	t, ok := l.timers[tok]
	if ok {
		delete(l.timers, tok)
	}
	l.mu.Unlock()

	if !ok {
		return false
	}
	t.fn()
	return true
}

// Pending returns the number of armed callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Close stops every timer, waits for in-flight sends to give up and then
// closes the Fired channel. Later Schedule calls are ignored.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for tok, t := range l.timers {
		t.timer.Stop()
		delete(l.timers, tok)
	}
	close(l.done)
	l.mu.Unlock()

	l.sending.Wait()
	close(l.fired)
}
