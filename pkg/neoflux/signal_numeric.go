package neoflux

// numeric constrains the arithmetic signal wrappers.
type numeric interface {
	~int | ~int64 | ~float64
}

// arith carries the arithmetic helpers shared by the typed numeric
// wrappers. Every method routes through Update, so two goroutines
// incrementing the same counter never lose a step between them.
type arith[T numeric] struct {
	*Signal[T]
}

// Inc adds one.
func (s arith[T]) Inc() {
	s.Update(func(v T) T { return v + 1 })
}

// Dec subtracts one.
func (s arith[T]) Dec() {
	s.Update(func(v T) T { return v - 1 })
}

// Add adds n to the current value.
func (s arith[T]) Add(n T) {
	s.Update(func(v T) T { return v + n })
}

// Sub subtracts n from the current value.
func (s arith[T]) Sub(n T) {
	s.Update(func(v T) T { return v - n })
}

// Mul multiplies the current value by n.
func (s arith[T]) Mul(n T) {
	s.Update(func(v T) T { return v * n })
}

// Div divides the current value by n. Integer division truncates toward
// zero; dividing an integer wrapper by zero panics like any other Go
// integer division.
func (s arith[T]) Div(n T) {
	s.Update(func(v T) T { return v / n })
}

// IntSignal is a Signal[int] with counter-style helpers.
type IntSignal struct {
	arith[int]
}

// NewIntSignal creates an int signal starting at initial.
func NewIntSignal(initial int) *IntSignal {
	return &IntSignal{arith[int]{NewSignal(initial)}}
}

// Int64Signal is a Signal[int64] with counter-style helpers.
type Int64Signal struct {
	arith[int64]
}

// NewInt64Signal creates an int64 signal starting at initial.
func NewInt64Signal(initial int64) *Int64Signal {
	return &Int64Signal{arith[int64]{NewSignal(initial)}}
}

// Float64Signal is a Signal[float64] with arithmetic helpers.
type Float64Signal struct {
	arith[float64]
}

// NewFloat64Signal creates a float64 signal starting at initial.
func NewFloat64Signal(initial float64) *Float64Signal {
	return &Float64Signal{arith[float64]{NewSignal(initial)}}
}
