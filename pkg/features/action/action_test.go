package action

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestActionRunCommitsResult(t *testing.T) {
	a := New(func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	if a.State() != Idle {
		t.Fatalf("initial state = %v, want Idle", a.State())
	}
	if !a.Run(21) {
		t.Fatal("Run was rejected")
	}

	waitFor(t, func() bool { return a.State() == Succeeded })
	got, ok := a.Result()
	if !ok || got != 42 {
		t.Errorf("Result() = (%d, %v), want (42, true)", got, ok)
	}
	if a.Err() != nil {
		t.Errorf("Err() = %v, want nil", a.Err())
	}
}

func TestActionFailureSetsError(t *testing.T) {
	boom := errors.New("boom")
	a := New(func(ctx context.Context, _ struct{}) (int, error) {
		return 0, boom
	})

	a.Run(struct{}{})
	waitFor(t, func() bool { return a.State() == Failed })

	if !errors.Is(a.Err(), boom) {
		t.Errorf("Err() = %v, want %v", a.Err(), boom)
	}
	if _, ok := a.Result(); ok {
		t.Error("Result() reported ok after a failure")
	}
}

func TestActionStateTransitionsAreAtomic(t *testing.T) {
	block := make(chan struct{})
	a := New(func(ctx context.Context, _ struct{}) (string, error) {
		<-block
		return "done", nil
	})

	type snap struct {
		state State
		err   error
	}
	var snaps []snap
	var mu sync.Mutex
	neoflux.CreateEffect(func() neoflux.Cleanup {
		s := a.State()
		e := a.Err()
		mu.Lock()
		snaps = append(snaps, snap{s, e})
		mu.Unlock()
		return nil
	})

	a.Run(struct{}{})
	close(block)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return snaps[len(snaps)-1].state == Succeeded
	})

	// No observed snapshot may pair Succeeded with a non-nil error.
	mu.Lock()
	defer mu.Unlock()
	for _, s := range snaps {
		if s.state == Succeeded && s.err != nil {
			t.Errorf("observed Succeeded with err=%v", s.err)
		}
	}
}

func TestActionCancelLatest(t *testing.T) {
	release := make(chan struct{})
	var started atomic.Int32
	a := New(func(ctx context.Context, n int) (int, error) {
		if started.Add(1) == 1 {
			select {
			case <-release:
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
		return n, nil
	})

	a.Run(1)
	waitFor(t, func() bool { return started.Load() == 1 })
	a.Run(2)

	waitFor(t, func() bool { return a.State() == Succeeded })
	close(release)
	time.Sleep(20 * time.Millisecond)

	got, _ := a.Result()
	if got != 2 {
		t.Errorf("Result() = %d, want 2 (latest run wins)", got)
	}
}

func TestActionDropWhileRunning(t *testing.T) {
	release := make(chan struct{})
	a := New(func(ctx context.Context, n int) (int, error) {
		<-release
		return n, nil
	}, WithPolicy[int](DropWhileRunning))

	if !a.Run(1) {
		t.Fatal("first Run was rejected")
	}
	waitFor(t, func() bool { return a.State() == Running })
	if a.Run(2) {
		t.Error("Run while running was accepted under DropWhileRunning")
	}

	close(release)
	waitFor(t, func() bool { return a.State() == Succeeded })
	got, _ := a.Result()
	if got != 1 {
		t.Errorf("Result() = %d, want 1", got)
	}
}

func TestActionQueue(t *testing.T) {
	release := make(chan struct{}, 10)
	var order []int
	var mu sync.Mutex
	a := New(func(ctx context.Context, n int) (int, error) {
		<-release
		mu.Lock()
		order = append(order, n)
		mu.Unlock()
		return n, nil
	}, WithQueue[int](2))

	if !a.Run(1) {
		t.Fatal("first Run rejected")
	}
	waitFor(t, func() bool { return a.State() == Running })
	if !a.Run(2) || !a.Run(3) {
		t.Fatal("queued Runs rejected below capacity")
	}
	if a.Run(4) {
		t.Error("Run beyond queue capacity was accepted")
	}

	release <- struct{}{}
	release <- struct{}{}
	release <- struct{}{}
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	})

	mu.Lock()
	defer mu.Unlock()
	for i, n := range order {
		if n != i+1 {
			t.Fatalf("execution order = %v, want [1 2 3]", order)
		}
	}
}

func TestActionQueueFullError(t *testing.T) {
	release := make(chan struct{})
	var gotErr error
	var mu sync.Mutex
	a := New(func(ctx context.Context, n int) (int, error) {
		<-release
		return n, nil
	},
		WithQueue[int](1),
		OnError[int](func(err error) {
			mu.Lock()
			gotErr = err
			mu.Unlock()
		}),
	)

	a.Run(1)
	waitFor(t, func() bool { return a.State() == Running })
	a.Run(2)
	a.Run(3) // queue full

	mu.Lock()
	defer mu.Unlock()
	if !errors.Is(gotErr, ErrQueueFull) {
		t.Errorf("OnError got %v, want ErrQueueFull", gotErr)
	}
	close(release)
}

func TestActionCancel(t *testing.T) {
	entered := make(chan struct{})
	var cancelled atomic.Bool
	a := New(func(ctx context.Context, _ struct{}) (int, error) {
		close(entered)
		<-ctx.Done()
		cancelled.Store(true)
		return 0, ctx.Err()
	})

	a.Run(struct{}{})
	<-entered
	a.Cancel()

	waitFor(t, func() bool { return cancelled.Load() })
	if a.State() != Idle {
		t.Errorf("state after Cancel = %v, want Idle", a.State())
	}
	if a.Err() != nil {
		t.Errorf("cancelled run committed error %v", a.Err())
	}
}

func TestActionHooks(t *testing.T) {
	var starts, successes atomic.Int32
	a := New(func(ctx context.Context, n int) (int, error) {
		return n, nil
	},
		OnStart[int](func() { starts.Add(1) }),
		OnSuccess[int](func(int) { successes.Add(1) }),
	)

	a.Run(5)
	waitFor(t, func() bool { return successes.Load() == 1 })
	if starts.Load() != 1 {
		t.Errorf("OnStart ran %d times, want 1", starts.Load())
	}
}

func TestActionReset(t *testing.T) {
	a := New(func(ctx context.Context, n int) (int, error) {
		return n, nil
	})

	a.Run(9)
	waitFor(t, func() bool { return a.State() == Succeeded })

	a.Reset()
	if a.State() != Idle {
		t.Errorf("state after Reset = %v, want Idle", a.State())
	}
	if v, ok := a.Result(); ok {
		t.Errorf("Result() after Reset = (%d, true), want ok=false", v)
	}
}
