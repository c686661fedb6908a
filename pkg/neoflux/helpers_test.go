package neoflux

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalTicks(t *testing.T) {
	var ticks atomic.Int32
	stop := Interval(10*time.Millisecond, func() {
		ticks.Add(1)
	})
	defer stop()

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestIntervalStop(t *testing.T) {
	var ticks atomic.Int32
	stop := Interval(10*time.Millisecond, func() {
		ticks.Add(1)
	})

	time.Sleep(35 * time.Millisecond)
	stop()
	stopped := ticks.Load()

	time.Sleep(50 * time.Millisecond)
	if ticks.Load() > stopped+1 {
		t.Errorf("ticker should stop after cleanup, went from %d to %d", stopped, ticks.Load())
	}

	// Calling the cleanup twice must be safe.
	stop()
}

func TestIntervalImmediate(t *testing.T) {
	fired := make(chan struct{}, 1)
	stop := Interval(time.Hour, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, IntervalImmediate())
	defer stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("immediate interval should tick without waiting for the duration")
	}
}

func TestTimeoutFires(t *testing.T) {
	fired := make(chan struct{})
	cancel := Timeout(10*time.Millisecond, func() {
		close(fired)
	})
	defer cancel()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout should have fired")
	}
}

func TestTimeoutCancel(t *testing.T) {
	var fired atomic.Bool
	cancel := Timeout(20*time.Millisecond, func() {
		fired.Store(true)
	})
	cancel()

	time.Sleep(60 * time.Millisecond)
	if fired.Load() {
		t.Error("cancelled timeout should not fire")
	}
}

func TestDebounceCollapsesBurst(t *testing.T) {
	source := NewSignal(0)
	debounced := Debounce(Readable[int](source), 30*time.Millisecond)

	var runs atomic.Int32
	var last atomic.Int32
	effect := CreateEffect(func() Cleanup {
		last.Store(int32(debounced.Get()))
		runs.Add(1)
		return nil
	})
	defer effect.Dispose()

	// A rapid burst settles to a single downstream update.
	source.Set(1)
	source.Set(2)
	source.Set(3)

	deadline := time.After(2 * time.Second)
	for last.Load() != 3 {
		select {
		case <-deadline:
			t.Fatalf("debounced value never caught up, have %d", last.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := runs.Load(); got != 2 {
		t.Errorf("expected 2 effect runs (initial + one update), got %d", got)
	}
}

func TestGoLatestCancelsSuperseded(t *testing.T) {
	results := make(chan string, 4)

	launch := GoLatest(
		func(ctx context.Context, key string) (string, error) {
			select {
			case <-time.After(30 * time.Millisecond):
				return "result:" + key, nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
		func(result string, err error) {
			if err == nil {
				results <- result
			}
		},
	)

	c1 := launch("a")
	defer c1()
	c2 := launch("b")
	defer c2()

	select {
	case got := <-results:
		if got != "result:b" {
			t.Errorf("expected only the latest key to apply, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result arrived")
	}

	// The superseded key must never apply.
	select {
	case got := <-results:
		t.Errorf("unexpected extra result %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGoLatestCoalescesSameKey(t *testing.T) {
	var starts atomic.Int32
	done := make(chan struct{}, 2)

	launch := GoLatest(
		func(ctx context.Context, key int) (int, error) {
			starts.Add(1)
			time.Sleep(20 * time.Millisecond)
			return key, nil
		},
		func(result int, err error) {
			done <- struct{}{}
		},
	)

	c1 := launch(7)
	defer c1()
	c2 := launch(7)
	defer c2()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("work never completed")
	}

	if starts.Load() != 1 {
		t.Errorf("same key should not restart work, got %d starts", starts.Load())
	}
}

func TestGoLatestForceRestart(t *testing.T) {
	var starts atomic.Int32

	launch := GoLatest(
		func(ctx context.Context, key int) (int, error) {
			starts.Add(1)
			return key, nil
		},
		func(result int, err error) {},
		GoLatestForceRestart(),
	)

	c1 := launch(7)
	defer c1()
	c2 := launch(7)
	defer c2()

	deadline := time.After(2 * time.Second)
	for starts.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 starts with force restart, got %d", starts.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSubscribeStream(t *testing.T) {
	feed := &testStream[int]{}
	var got atomic.Int32

	cleanup := SubscribeStream(Stream[int](feed), func(v int) {
		got.Store(int32(v))
	})

	feed.publish(42)
	if got.Load() != 42 {
		t.Errorf("expected 42, got %d", got.Load())
	}

	cleanup()
	feed.publish(99)
	if got.Load() != 42 {
		t.Errorf("handler should not fire after unsubscribe, got %d", got.Load())
	}
}

// testStream is a minimal Stream implementation for testing.
type testStream[T any] struct {
	handler func(T)
}

func (s *testStream[T]) Subscribe(handler func(T)) func() {
	s.handler = handler
	return func() {
		s.handler = nil
	}
}

func (s *testStream[T]) publish(v T) {
	if s.handler != nil {
		s.handler(v)
	}
}
