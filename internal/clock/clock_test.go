package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRealNowUsesUTC(t *testing.T) {
	now := Real{}.Now()
	require.Equal(t, time.UTC, now.Location())
}

func TestRealAfterFires(t *testing.T) {
	select {
	case <-Real{}.After(5 * time.Millisecond):
	case <-time.After(time.Second):
		t.Fatal("After did not fire")
	}
}

func TestFake_AdvanceFiresDueTimers(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	short := f.After(time.Second)
	long := f.After(time.Minute)
	require.Equal(t, 2, f.Pending())

	f.Advance(2 * time.Second)
	select {
	case got := <-short:
		require.Equal(t, start.Add(2*time.Second), got)
	default:
		t.Fatal("short timer should have fired")
	}
	select {
	case <-long:
		t.Fatal("long timer fired early")
	default:
	}
	require.Equal(t, 1, f.Pending())
}

func TestFake_NonPositiveDurationFiresImmediately(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	select {
	case <-f.After(0):
	default:
		t.Fatal("After(0) must be ready")
	}
}

func TestStepping_AdvancesOnAfter(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	f := NewStepping(start)

	<-f.After(5 * time.Second)
	<-f.After(5 * time.Second)

	require.Equal(t, start.Add(10*time.Second).UTC(), f.Now())
	require.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, f.Waits())
	require.Zero(t, f.Pending())
}
