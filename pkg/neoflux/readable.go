package neoflux

// Readable is the read-only face of a reactive cell. Both Signal and Memo
// implement it, so derivations and joins can accept either without caring
// which one they were handed.
type Readable[T any] interface {
	// Get returns the current value, subscribing the running listener.
	Get() T

	// Peek returns the current value without creating a dependency.
	Peek() T
}

// Writable is a readable cell that can also be written. Only Signal
// implements it; keeping the two faces as distinct interface types makes
// the read-only/read-write distinction explicit in APIs instead of relying
// on callers to know which concrete cell they hold.
type Writable[T any] interface {
	Readable[T]

	// Set replaces the value, notifying subscribers if it changed.
	Set(value T)

	// Update atomically derives the new value from the old one.
	Update(fn func(T) T)
}

var (
	_ Writable[int] = (*Signal[int])(nil)
	_ Readable[int] = (*Memo[int])(nil)
)
