package store

// Key binds a store path to a concrete type, replacing the `any` plumbing
// of raw Get/Set with typed access:
//
//	age := store.NewKey[int](s, "user.age")
//	age.Set(36)
//	v, ok := age.Get() // v is int
type Key[T any] struct {
	store *Store
	path  string
}

// NewKey binds path in s to type T.
func NewKey[T any](s *Store, path string) Key[T] {
	return Key[T]{store: s, path: path}
}

// Path returns the bound path.
func (k Key[T]) Path() string {
	return k.path
}

// Get returns the value at the bound path. The read is tracked. ok is
// false when the path is missing or holds a value of another type.
func (k Key[T]) Get() (T, bool) {
	v, ok := k.store.Get(k.path)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Peek is Get without tracking.
func (k Key[T]) Peek() (T, bool) {
	v, ok := k.store.Peek(k.path)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Set writes v at the bound path.
func (k Key[T]) Set(v T) {
	k.store.Set(k.path, v)
}

// Update replaces the value with fn(old). fn receives the zero value when
// the path is missing or holds another type.
func (k Key[T]) Update(fn func(T) T) {
	k.store.Update(k.path, func(old any) any {
		typed, _ := old.(T)
		return fn(typed)
	})
}

// Subscribe runs fn with the typed value now and after every write to the
// path. Values of another type arrive as the zero value.
func (k Key[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return k.store.Subscribe(k.path, func(v any) {
		typed, _ := v.(T)
		fn(typed)
	})
}
