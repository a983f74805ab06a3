package scheduler

import (
	"sort"
	"time"
)

// Manual is a virtual-clock scheduler. Nothing fires until Advance is
// called, which makes timer-driven behaviour deterministic in tests.
type Manual struct {
	now    time.Duration
	next   Token
	queued map[Token]manualEntry
}

type manualEntry struct {
	at time.Duration
	fn func()
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{queued: make(map[Token]manualEntry)}
}

// Schedule arms fn to run once the clock has advanced by delay.
func (m *Manual) Schedule(delay time.Duration, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	m.next++
	m.queued[m.next] = manualEntry{at: m.now + delay, fn: fn}
	return m.next
}

// Cancel disarms tok. It reports whether tok was still armed.
func (m *Manual) Cancel(tok Token) bool {
	if _, ok := m.queued[tok]; !ok {
		return false
	}
	delete(m.queued, tok)
	return true
}

// Advance moves the clock forward by d, running every callback that falls
// due in deadline order. Ties run in scheduling order. Callbacks scheduled
// by callbacks run too when their deadline is inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		tok, ok := m.nextDue(target)
		if !ok {
			break
		}
		entry := m.queued[tok]
		delete(m.queued, tok)
		m.now = entry.at
		entry.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(target time.Duration) (Token, bool) {
	var (
		best  Token
		found bool
	)
	for tok, e := range m.queued {
		if e.at > target {
			continue
		}
		if !found || e.at < m.queued[best].at || (e.at == m.queued[best].at && tok < best) {
			best, found = tok, true
		}
	}
	return best, found
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int {
	return len(m.queued)
}

// Deadlines returns the remaining delay of every armed callback, soonest first.
func (m *Manual) Deadlines() []time.Duration {
	out := make([]time.Duration, 0, len(m.queued))
	for _, e := range m.queued {
		out = append(out, e.at-m.now)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
