package neoflux

// StringSignal is a Signal[string] with builder-style helpers.
type StringSignal struct {
	*Signal[string]
}

// NewStringSignal creates a string signal starting at initial.
func NewStringSignal(initial string) *StringSignal {
	return &StringSignal{NewSignal(initial)}
}

// Append concatenates suffix onto the current value.
func (s *StringSignal) Append(suffix string) {
	s.Update(func(v string) string { return v + suffix })
}

// Prepend concatenates prefix in front of the current value.
func (s *StringSignal) Prepend(prefix string) {
	s.Update(func(v string) string { return prefix + v })
}

// Clear resets the value to the empty string.
func (s *StringSignal) Clear() {
	s.Set("")
}

// Len returns the byte length of the current value. It reads through
// Get, so a tracked evaluation calling it subscribes to the signal.
func (s *StringSignal) Len() int {
	return len(s.Get())
}

// IsEmpty reports whether the value is the empty string. Tracked like
// Len.
func (s *StringSignal) IsEmpty() bool {
	return s.Get() == ""
}
