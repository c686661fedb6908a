package neoflux

// MapSignal wraps Signal[map[K]V] with convenience methods for map
// operations. Every mutation builds a fresh map, so values handed out by
// Get or Peek are never changed behind a reader's back.
type MapSignal[K comparable, V any] struct {
	*Signal[map[K]V]
}

// NewMapSignal creates a new MapSignal with the given initial value.
// If initial is nil, creates an empty map.
func NewMapSignal[K comparable, V any](initial map[K]V) *MapSignal[K, V] {
	if initial == nil {
		initial = make(map[K]V)
	}
	return &MapSignal[K, V]{NewSignal(initial)}
}

// SetKey sets a key-value pair in the map.
func (s *MapSignal[K, V]) SetKey(key K, value V) {
	s.Update(func(m map[K]V) map[K]V {
		result := make(map[K]V, len(m)+1)
		for k, v := range m {
			result[k] = v
		}
		result[key] = value
		return result
	})
}

// RemoveKey removes a key from the map.
// Does nothing if the key doesn't exist.
func (s *MapSignal[K, V]) RemoveKey(key K) {
	s.Update(func(m map[K]V) map[K]V {
		if _, ok := m[key]; !ok {
			return m
		}
		result := make(map[K]V, len(m))
		for k, v := range m {
			if k != key {
				result[k] = v
			}
		}
		return result
	})
}

// UpdateKey updates the value for a key using the provided function.
// Does nothing if the key doesn't exist.
func (s *MapSignal[K, V]) UpdateKey(key K, fn func(V) V) {
	s.Update(func(m map[K]V) map[K]V {
		v, ok := m[key]
		if !ok {
			return m
		}
		result := make(map[K]V, len(m))
		for k, val := range m {
			result[k] = val
		}
		result[key] = fn(v)
		return result
	})
}

// GetKey returns the value for a key.
// This reads the signal and creates a dependency.
func (s *MapSignal[K, V]) GetKey(key K) (V, bool) {
	m := s.Get()
	v, ok := m[key]
	return v, ok
}

// HasKey returns true if the key exists in the map.
// This reads the signal and creates a dependency.
func (s *MapSignal[K, V]) HasKey(key K) bool {
	_, ok := s.GetKey(key)
	return ok
}

// Len returns the number of keys in the map.
// This reads the signal and creates a dependency.
func (s *MapSignal[K, V]) Len() int {
	return len(s.Get())
}

// Clear removes all keys from the map.
func (s *MapSignal[K, V]) Clear() {
	s.Set(make(map[K]V))
}

// Keys returns all keys in the map.
// This reads the signal and creates a dependency.
func (s *MapSignal[K, V]) Keys() []K {
	m := s.Get()
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Values returns all values in the map.
// This reads the signal and creates a dependency.
func (s *MapSignal[K, V]) Values() []V {
	m := s.Get()
	values := make([]V, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}
