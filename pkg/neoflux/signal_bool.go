package neoflux

// BoolSignal is a Signal[bool] with flag-style helpers.
type BoolSignal struct {
	*Signal[bool]
}

// NewBoolSignal creates a boolean signal starting at initial.
func NewBoolSignal(initial bool) *BoolSignal {
	return &BoolSignal{NewSignal(initial)}
}

// Toggle flips the flag. It routes through Update, so concurrent toggles
// never cancel each other out by reading a stale value.
func (s *BoolSignal) Toggle() {
	s.Update(func(v bool) bool { return !v })
}

// SetTrue raises the flag. Subscribers are only notified when the flag
// was down.
func (s *BoolSignal) SetTrue() {
	s.Set(true)
}

// SetFalse lowers the flag.
func (s *BoolSignal) SetFalse() {
	s.Set(false)
}
