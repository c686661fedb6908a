package neoflux

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Interval schedules periodic ticks that execute fn. The returned Cleanup
// stops future ticks.
//
// By default the first tick occurs after duration d. Use IntervalImmediate()
// to trigger the first tick right away.
//
// The usual pattern is to start the interval inside an effect and return
// its Cleanup, so the ticker stops when the effect reruns or its owner is
// disposed:
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    return neoflux.Interval(time.Second, func() {
//	        counter.Inc()
//	    })
//	})
func Interval(d time.Duration, fn func(), opts ...IntervalOption) Cleanup {
	var cfg intervalConfig
	for _, opt := range opts {
		opt.applyInterval(&cfg)
	}

	done := make(chan struct{})

	go func() {
		if cfg.immediate {
			select {
			case <-done:
				return
			default:
				fn()
			}
		}

		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// intervalConfig holds configuration from IntervalOptions.
type intervalConfig struct {
	immediate bool
}

// IntervalOption is an option for configuring Interval.
type IntervalOption interface {
	applyInterval(cfg *intervalConfig)
}

type intervalOptionFunc func(*intervalConfig)

func (f intervalOptionFunc) applyInterval(cfg *intervalConfig) { f(cfg) }

// IntervalImmediate causes the first tick to occur immediately instead of
// after the duration.
func IntervalImmediate() IntervalOption {
	return intervalOptionFunc(func(cfg *intervalConfig) {
		cfg.immediate = true
	})
}

// Timeout creates a one-shot timer that executes fn after duration d.
// Returns a Cleanup that cancels the timer if called before it fires.
//
// This is a simpler alternative to Interval for single delayed operations:
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    return neoflux.Timeout(5*time.Second, func() {
//	        showHint.SetTrue()
//	    })
//	})
func Timeout(d time.Duration, fn func()) Cleanup {
	var fired atomic.Bool
	timer := time.AfterFunc(d, func() {
		if fired.CompareAndSwap(false, true) {
			fn()
		}
	})

	return func() {
		fired.Store(true)
		timer.Stop()
	}
}

// Debounce derives a value that trails source: after source settles for
// duration d without further changes, the derived value catches up. Rapid
// bursts of writes collapse into a single downstream update.
//
// The derived value starts at source's current value. The effect driving
// it belongs to the current owner, so disposing the owner stops the
// debouncing.
func Debounce[T any](source Readable[T], d time.Duration) Readable[T] {
	out := NewSignal(source.Peek())

	var mu sync.Mutex
	var timer *time.Timer
	first := true

	CreateEffect(func() Cleanup {
		v := source.Get()
		if first {
			first = false
			return nil
		}

		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			out.Set(v)
		})
		pending := timer
		mu.Unlock()

		return func() {
			pending.Stop()
		}
	})

	return out
}

// Stream is an interface for event streams that support subscription.
// The Subscribe method returns an unsubscribe function.
type Stream[T any] interface {
	Subscribe(handler func(T)) (unsubscribe func())
}

// SubscribeStream connects an event stream to the reactive graph: fn runs
// for each message, and the returned Cleanup unsubscribes. Typically
// started inside an effect:
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    return neoflux.SubscribeStream(feed, func(msg Message) {
//	        messages.Append(msg)
//	    })
//	})
func SubscribeStream[T any](stream Stream[T], fn func(T)) Cleanup {
	return stream.Subscribe(fn)
}

// GoLatest builds a launcher for async work where only the most recent
// request matters. Calling the launcher with a key starts work for that
// key; a later call with a different key cancels the in-flight work and
// starts over, and a result arriving for a superseded key is dropped
// without calling apply. Calling with the same key again is a no-op while
// that work runs, so effect reruns that did not change the key do not
// restart it.
//
// The launcher is meant to be invoked inside an effect, returning its
// Cleanup so unmounting cancels outstanding work:
//
//	search := neoflux.GoLatest(
//	    func(ctx context.Context, q string) ([]User, error) {
//	        return api.SearchUsers(ctx, q)
//	    },
//	    func(users []User, err error) {
//	        if err == nil {
//	            results.Set(users)
//	        }
//	    },
//	)
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    return search(query.Get())
//	})
//
// apply runs on the worker goroutine; writes it makes propagate there.
func GoLatest[K comparable, R any](
	work func(ctx context.Context, key K) (R, error),
	apply func(result R, err error),
	opts ...GoLatestOption,
) func(key K) Cleanup {
	var cfg goLatestConfig
	for _, opt := range opts {
		opt.applyGoLatest(&cfg)
	}

	var mu sync.Mutex
	var lastKey K
	var started bool
	var cancel context.CancelFunc
	var seq uint64

	return func(key K) Cleanup {
		mu.Lock()

		if started && lastKey == key && !cfg.forceRestart {
			// Same key, work may be in flight. Keep it running; only an
			// unmount-time cleanup cancels it.
			current := cancel
			mu.Unlock()
			return func() {
				if current != nil {
					current()
				}
			}
		}

		if cancel != nil {
			cancel()
		}

		started = true
		lastKey = key
		seq++
		mySeq := seq

		workCtx, myCancel := context.WithCancel(context.Background())
		cancel = myCancel
		mu.Unlock()

		go func() {
			result, err := work(workCtx, key)
			if workCtx.Err() != nil {
				return
			}

			mu.Lock()
			stale := seq != mySeq
			mu.Unlock()
			if stale {
				return
			}

			apply(result, err)
		}()

		return func() {
			myCancel()
		}
	}
}

// goLatestConfig holds configuration from GoLatestOptions.
type goLatestConfig struct {
	forceRestart bool
}

// GoLatestOption is an option for configuring GoLatest.
type GoLatestOption interface {
	applyGoLatest(cfg *goLatestConfig)
}

type goLatestOptionFunc func(*goLatestConfig)

func (f goLatestOptionFunc) applyGoLatest(cfg *goLatestConfig) { f(cfg) }

// GoLatestForceRestart causes work to restart even when the key is
// unchanged. By default, same key means no new work; existing work
// continues.
func GoLatestForceRestart() GoLatestOption {
	return goLatestOptionFunc(func(cfg *goLatestConfig) {
		cfg.forceRestart = true
	})
}
