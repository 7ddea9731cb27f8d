package clock

import (
	"sync"
	"time"
)

// Fake is a controllable Clock for tests. Time stands still until
// Advance is called, unless the clock was built with NewStepping, in
// which case every After call moves time forward by the requested
// duration and fires at once.
type Fake struct {
	mu       sync.Mutex
	now      time.Time
	stepping bool
	waits    []time.Duration
	timers   []*fakeTimer
}

type fakeTimer struct {
	at time.Time
	ch chan time.Time
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start.UTC()}
}

// NewStepping returns a Fake that advances itself on every After call.
func NewStepping(start time.Time) *Fake {
	return &Fake{now: start.UTC(), stepping: true}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.waits = append(f.waits, d)
	if d <= 0 {
		ch <- f.now
		return ch
	}
	if f.stepping {
		f.now = f.now.Add(d)
		ch <- f.now
		return ch
	}
	f.timers = append(f.timers, &fakeTimer{at: f.now.Add(d), ch: ch})
	return ch
}

// Advance moves time forward by d and fires every timer that is due.
func (f *Fake) Advance(d time.Duration) time.Time {
	if d < 0 {
		d = 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
	remaining := f.timers[:0]
	for _, t := range f.timers {
		if t.at.After(f.now) {
			remaining = append(remaining, t)
			continue
		}
		t.ch <- f.now
	}
	f.timers = remaining
	return f.now
}

// Pending returns the number of timers that have not fired yet.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// Waits returns every duration passed to After, in call order.
func (f *Fake) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waits))
	copy(out, f.waits)
	return out
}
