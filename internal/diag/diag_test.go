package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestNewFillsFromRegistry(t *testing.T) {
	d := New("R004", "a..b")
	if d.Code != "R004" {
		t.Errorf("Code = %q, want R004", d.Code)
	}
	if d.Category != CategoryStore {
		t.Errorf("Category = %q, want store", d.Category)
	}
	if !strings.Contains(d.Message, `"a..b"`) {
		t.Errorf("Message = %q, want formatted path", d.Message)
	}
	if d.DocURL == "" {
		t.Error("DocURL empty for registered code")
	}
}

func TestNewUnknownCodeDegrades(t *testing.T) {
	d := New("Z999")
	if d.Code != "Z999" {
		t.Errorf("Code = %q, want Z999", d.Code)
	}
	if d.Message == "" {
		t.Error("unknown code produced empty message")
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	d := New("C002").Wrap(cause)

	if got := d.Error(); !strings.HasPrefix(got, "C002: ") {
		t.Errorf("Error() = %q, want C002 prefix", got)
	}
	if !errors.Is(d, cause) {
		t.Error("errors.Is failed through Wrapped")
	}

	var target *Diagnostic
	if !errors.As(error(d), &target) {
		t.Error("errors.As failed for *Diagnostic")
	}
}

func TestFormatSections(t *testing.T) {
	DisableColors()
	defer EnableColors()

	d := New("C003", "port out of range").
		WithSuggestion("use a port between 1 and 65535").
		WithExample(`{"inspector": {"addr": "localhost:9230"}}`).
		Wrap(errors.New("Port: must be 1-65535"))

	out := d.Format()
	for _, want := range []string{
		"ERROR C003",
		"port out of range",
		"[config]",
		"hint: use a port",
		"caused by: Port",
		"docs: https://neoflux.dev",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("T001", CategoryCLI, "test diagnostic %s", "detail", "")
	d := New("T001", "x")
	if d.Message != "test diagnostic x" {
		t.Errorf("Message = %q", d.Message)
	}
}
