package diag

import "fmt"

// Category classifies a diagnostic.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryStore   Category = "store"
	CategoryConfig  Category = "config"
	CategoryPersist Category = "persist"
	CategoryCLI     Category = "cli"
)

// Diagnostic is a structured error with a stable code, a longer
// explanation, and fix guidance. It is the error type the CLI and config
// loader surface to users; library hot paths keep returning plain errors.
type Diagnostic struct {
	// Code is a unique identifier, e.g. "R001".
	Code string

	// Category is the diagnostic's area.
	Category Category

	// Message is a short description.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Suggestion is a hint on how to fix the problem.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL links to documentation about this diagnostic.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return d.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (d *Diagnostic) Unwrap() error {
	return d.Wrapped
}

// WithDetail overrides the registered detail text.
func (d *Diagnostic) WithDetail(format string, args ...any) *Diagnostic {
	d.Detail = fmt.Sprintf(format, args...)
	return d
}

// WithSuggestion adds a fix suggestion.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// WithExample adds a code example.
func (d *Diagnostic) WithExample(example string) *Diagnostic {
	d.Example = example
	return d
}

// Wrap attaches an underlying error.
func (d *Diagnostic) Wrap(err error) *Diagnostic {
	d.Wrapped = err
	return d
}

// New creates a diagnostic from a registered code. Unknown codes produce
// a generic diagnostic carrying the code, so a stale call site degrades
// instead of panicking.
func New(code string, args ...any) *Diagnostic {
	tmpl, ok := registry[code]
	if !ok {
		return &Diagnostic{
			Code:     code,
			Category: CategoryRuntime,
			Message:  fmt.Sprintf("unknown diagnostic (args: %v)", args),
		}
	}

	message := tmpl.Message
	if len(args) > 0 {
		message = fmt.Sprintf(tmpl.Message, args...)
	}
	return &Diagnostic{
		Code:     code,
		Category: tmpl.Category,
		Message:  message,
		Detail:   tmpl.Detail,
		DocURL:   tmpl.DocURL,
	}
}

// Newf creates an unregistered diagnostic with an ad-hoc message.
func Newf(category Category, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
