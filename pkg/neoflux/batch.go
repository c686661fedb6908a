package neoflux

// Batch runs fn with effect flushing deferred. Writes inside fn still
// update signal values immediately and invalidate memos, but effects run
// once, after the outermost batch ends, no matter how many of their
// sources changed. Batches nest; only the outermost one flushes.
//
// If fn panics the batch still closes: values written before the panic
// stay written, and effects they scheduled run on the next flush.
func Batch(fn func()) {
	tc := getTrackingContext()
	tc.beginPropagation()
	defer tc.endPropagation()
	fn()
}

// BatchValue is Batch for functions that return a value.
func BatchValue[T any](fn func() T) T {
	tc := getTrackingContext()
	tc.beginPropagation()
	defer tc.endPropagation()
	return fn()
}

// Untracked runs fn with dependency tracking suspended. Reads inside fn do
// not subscribe the current memo or effect to anything.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedValue reads a value without creating a dependency on it. The
// usual form is UntrackedValue(sig.Get), though any function works:
//
//	total := UntrackedValue(func() int { return a.Get() + b.Get() })
func UntrackedValue[T any](fn func() T) T {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	return fn()
}
