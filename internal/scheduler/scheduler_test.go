package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_RunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.Schedule(3*time.Second, func() { order = append(order, "c") })
	m.Schedule(1*time.Second, func() { order = append(order, "a") })
	m.Schedule(2*time.Second, func() { order = append(order, "b1") })
	m.Schedule(2*time.Second, func() { order = append(order, "b2") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b1", "b2"}, order)
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
	assert.Equal(t, 3*time.Second, m.Now())
}

func TestManual_CancelPreventsRun(t *testing.T) {
	m := NewManual()
	ran := false
	tok := m.Schedule(time.Second, func() { ran = true })

	assert.True(t, m.Cancel(tok))
	assert.False(t, m.Cancel(tok), "second cancel should report nothing armed")

	m.Advance(time.Minute)
	assert.False(t, ran)
}

func TestManual_NestedScheduleInsideWindow(t *testing.T) {
	m := NewManual()
	var at []time.Duration

	m.Schedule(time.Second, func() {
		at = append(at, m.Now())
		m.Schedule(2*time.Second, func() { at = append(at, m.Now()) })
	})

	m.Advance(5 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 3 * time.Second}, at)
}

func TestManual_Deadlines(t *testing.T) {
	m := NewManual()
	m.Schedule(5*time.Second, func() {})
	m.Schedule(2*time.Second, func() {})
	m.Advance(time.Second)

	assert.Equal(t, []time.Duration{time.Second, 4 * time.Second}, m.Deadlines())
}

func TestLoop_DispatchRunsFiredCallback(t *testing.T) {
	l := NewLoop(1)
	defer l.Close()

	ran := false
	tok := l.Schedule(time.Millisecond, func() { ran = true })

	select {
	case got := <-l.Fired():
		require.Equal(t, tok, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	assert.True(t, l.Dispatch(tok))
	assert.True(t, ran)
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_CancelAfterFireDropsDispatch(t *testing.T) {
	l := NewLoop(1)
	defer l.Close()

	ran := false
	tok := l.Schedule(time.Millisecond, func() { ran = true })

	select {
	case <-l.Fired():
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	// The token is already on its way to the loop; cancelling must still win.
	assert.True(t, l.Cancel(tok))
	assert.False(t, l.Dispatch(tok))
	assert.False(t, ran)
}

func TestLoop_CloseDisarmsEverything(t *testing.T) {
	l := NewLoop(4)
	l.Schedule(time.Hour, func() {})
	l.Schedule(time.Hour, func() {})
	require.Equal(t, 2, l.Pending())

	l.Close()
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_CloseClosesFiredChannel(t *testing.T) {
	l := NewLoop(1)

	// Fill the buffer so the second timer goroutine blocks on its send.
	l.Schedule(time.Millisecond, func() {})
	l.Schedule(time.Millisecond, func() {})
	time.Sleep(50 * time.Millisecond)

	l.Close()
	l.Close() // idempotent

	drained := 0
	for range l.Fired() {
		drained++
	}
	assert.LessOrEqual(t, drained, 1)

	l.Schedule(time.Millisecond, func() {})
	assert.Equal(t, 0, l.Pending())
}
