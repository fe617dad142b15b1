package debounce

import (
	"sync"
	"testing"
	"time"
)

// manualTimers records scheduled callbacks so tests decide when they run.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	wasActive := !m.stopped
	m.stopped = true
	return wasActive
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{delay: d, fn: f}
	m.timers = append(m.timers, timer)
	return timer
}

// fireAll runs every scheduled callback, including stopped ones, the way a
// real timer can still fire after losing a race with Stop.
func (m *manualTimers) fireAll() {
	m.mu.Lock()
	timers := append([]*manualTimer(nil), m.timers...)
	m.mu.Unlock()
	for _, timer := range timers {
		timer.fn()
	}
}

func (m *manualTimers) last() *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers[len(m.timers)-1]
}

func newRecorder() (*[]string, func(string)) {
	var got []string
	return &got, func(v string) { got = append(got, v) }
}

func TestOnlyLatestValueDelivered(t *testing.T) {
	timers := &manualTimers{}
	got, record := newRecorder()
	d := New(500*time.Millisecond, record, WithAfterFunc(timers.afterFunc))

	d.Push("w")
	d.Push("wh")
	d.Push("why")

	timers.fireAll()

	if len(*got) != 1 || (*got)[0] != "why" {
		t.Fatalf("delivered %v, want [why]", *got)
	}
	if d.Pending() {
		t.Error("value still pending after delivery")
	}
}

func TestPushRestartsTimerWithDelay(t *testing.T) {
	timers := &manualTimers{}
	_, record := newRecorder()
	d := New(250*time.Millisecond, record, WithAfterFunc(timers.afterFunc))

	d.Push("a")
	first := timers.last()
	d.Push("b")

	if !first.stopped {
		t.Error("first timer not stopped by second push")
	}
	if got := timers.last().delay; got != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", got)
	}
}

func TestDefaultDelay(t *testing.T) {
	timers := &manualTimers{}
	_, record := newRecorder()
	d := New(0, record, WithAfterFunc(timers.afterFunc))
	d.Push("a")
	if got := timers.last().delay; got != DefaultDelay {
		t.Errorf("delay = %v, want %v", got, DefaultDelay)
	}
}

func TestCancelDropsValue(t *testing.T) {
	timers := &manualTimers{}
	got, record := newRecorder()
	d := New(time.Second, record, WithAfterFunc(timers.afterFunc))

	d.Push("draft")
	d.Cancel()
	timers.fireAll()

	if len(*got) != 0 {
		t.Fatalf("delivered %v after Cancel", *got)
	}
}

func TestStopIgnoresInFlightAndLaterPushes(t *testing.T) {
	timers := &manualTimers{}
	got, record := newRecorder()
	d := New(time.Second, record, WithAfterFunc(timers.afterFunc))

	d.Push("draft")
	d.Stop()
	d.Push("after stop")
	timers.fireAll()

	if len(*got) != 0 {
		t.Fatalf("delivered %v after Stop", *got)
	}
	if d.Pending() {
		t.Error("Pending() true after Stop")
	}
}

func TestFlushDeliversImmediately(t *testing.T) {
	timers := &manualTimers{}
	got, record := newRecorder()
	d := New(time.Second, record, WithAfterFunc(timers.afterFunc))

	d.Push("now")
	d.Flush()
	timers.fireAll()

	if len(*got) != 1 || (*got)[0] != "now" {
		t.Fatalf("delivered %v, want [now]", *got)
	}
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	got, record := newRecorder()
	d := New(time.Second, record)
	d.Flush()
	if len(*got) != 0 {
		t.Fatalf("delivered %v with nothing pending", *got)
	}
}

func TestRealTimerDelivers(t *testing.T) {
	delivered := make(chan string, 1)
	d := New(10*time.Millisecond, func(v string) { delivered <- v })
	d.Push("x")

	select {
	case v := <-delivered:
		if v != "x" {
			t.Fatalf("delivered %q, want x", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}
