package resource

// Handler handles one resource state during a Match call, producing a
// value of type R when its state is active.
type Handler[T, R any] interface {
	handle(r *Resource[T]) (R, bool)
}

// Match evaluates handlers in order and returns the result of the first
// one whose state matches the resource's current state. The state read is
// tracked, so a Match inside an effect re-runs as the resource moves
// through its lifecycle:
//
//	label := neoflux.NewMemo(func() string {
//	    out, _ := resource.Match(user,
//	        resource.OnLoading[*User](func() string { return "loading..." }),
//	        resource.OnFailed[*User](func(err error) string { return err.Error() }),
//	        resource.OnReady(func(u *User) string { return u.Name }),
//	    )
//	    return out
//	})
func Match[T, R any](r *Resource[T], handlers ...Handler[T, R]) (R, bool) {
	for _, h := range handlers {
		if out, ok := h.handle(r); ok {
			return out, true
		}
	}
	var zero R
	return zero, false
}

type idleHandler[T, R any] struct {
	fn func() R
}

func (h idleHandler[T, R]) handle(r *Resource[T]) (R, bool) {
	if r.State() == Idle {
		return h.fn(), true
	}
	var zero R
	return zero, false
}

type loadingHandler[T, R any] struct {
	fn func() R
}

func (h loadingHandler[T, R]) handle(r *Resource[T]) (R, bool) {
	if r.State() == Loading {
		return h.fn(), true
	}
	var zero R
	return zero, false
}

type readyHandler[T, R any] struct {
	fn func(T) R
}

func (h readyHandler[T, R]) handle(r *Resource[T]) (R, bool) {
	if r.State() == Ready {
		return h.fn(r.Data()), true
	}
	var zero R
	return zero, false
}

type failedHandler[T, R any] struct {
	fn func(error) R
}

func (h failedHandler[T, R]) handle(r *Resource[T]) (R, bool) {
	if r.State() == Failed {
		return h.fn(r.Err()), true
	}
	var zero R
	return zero, false
}

// OnIdle handles the Idle state.
func OnIdle[T, R any](fn func() R) Handler[T, R] {
	return idleHandler[T, R]{fn: fn}
}

// OnLoading handles the Loading state.
func OnLoading[T, R any](fn func() R) Handler[T, R] {
	return loadingHandler[T, R]{fn: fn}
}

// OnReady handles the Ready state, receiving the fetched data.
func OnReady[T, R any](fn func(T) R) Handler[T, R] {
	return readyHandler[T, R]{fn: fn}
}

// OnFailed handles the Failed state, receiving the fetch error.
func OnFailed[T, R any](fn func(error) R) Handler[T, R] {
	return failedHandler[T, R]{fn: fn}
}
