package highlight

import (
	"errors"
	"testing"

	"github.com/dshills/statline/internal/host"
)

type fakeRegistry struct {
	theme   map[string]host.Attrs
	defined map[string]host.Attrs
	failOn  string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		theme:   make(map[string]host.Attrs),
		defined: make(map[string]host.Attrs),
	}
}

func (r *fakeRegistry) LookupHighlight(group string) (host.Attrs, error) {
	attrs, ok := r.theme[group]
	if !ok {
		return host.Attrs{}, errors.New("undefined group")
	}
	return attrs, nil
}

func (r *fakeRegistry) DefineHighlight(group string, attrs host.Attrs) error {
	if group == r.failOn {
		return errors.New("registry write failed")
	}
	r.defined[group] = attrs
	return nil
}

func TestResolveAll_UsesThemeColors(t *testing.T) {
	reg := newFakeRegistry()
	reg.theme[BaseGroup] = host.Attrs{Background: "#101010"}
	reg.theme["DiagnosticError"] = host.Attrs{Foreground: "#FF0000"}

	NewResolver(reg).ResolveAll()

	got, ok := reg.defined["StatuslineError"]
	if !ok {
		t.Fatal("StatuslineError was not defined")
	}
	if got.Foreground != "#ff0000" {
		t.Errorf("foreground = %q, want %q", got.Foreground, "#ff0000")
	}
	if got.Background != "#101010" {
		t.Errorf("background = %q, want %q", got.Background, "#101010")
	}
	if !got.Bold {
		t.Error("expected bold")
	}
}

func TestResolveAll_FallbacksWhenThemeEmpty(t *testing.T) {
	reg := newFakeRegistry()

	NewResolver(reg).ResolveAll()

	if len(reg.defined) != len(Roles) {
		t.Fatalf("defined %d groups, want %d", len(reg.defined), len(Roles))
	}
	for _, role := range Roles {
		got, ok := reg.defined[role.Group()]
		if !ok {
			t.Fatalf("%s was not defined", role.Group())
			continue
		}
		if got.Foreground != role.FallbackFg() {
			t.Errorf("%s foreground = %q, want fallback %q", role.Group(), got.Foreground, role.FallbackFg())
		}
		if got.Background != FallbackBg {
			t.Errorf("%s background = %q, want fallback %q", role.Group(), got.Background, FallbackBg)
		}
	}
}

func TestResolveAll_MalformedThemeColor(t *testing.T) {
	reg := newFakeRegistry()
	reg.theme["DiagnosticWarn"] = host.Attrs{Foreground: "not-a-color"}

	NewResolver(reg).ResolveAll()

	got := reg.defined["StatuslineWarn"]
	if got.Foreground != RoleWarn.FallbackFg() {
		t.Errorf("foreground = %q, want fallback %q", got.Foreground, RoleWarn.FallbackFg())
	}
}

func TestResolveAll_Idempotent(t *testing.T) {
	reg := newFakeRegistry()
	reg.theme[BaseGroup] = host.Attrs{Background: "#222222"}

	r := NewResolver(reg)
	r.ResolveAll()
	first := reg.defined["StatuslineMode"]
	r.ResolveAll()
	second := reg.defined["StatuslineMode"]

	if first != second {
		t.Errorf("second resolve produced %+v, want %+v", second, first)
	}
}

func TestResolveAll_RegistryWriteFailureIsSilent(t *testing.T) {
	reg := newFakeRegistry()
	reg.failOn = "StatuslineMode"

	// Must not panic and must still define the remaining roles.
	NewResolver(reg).ResolveAll()

	if _, ok := reg.defined["StatuslineError"]; !ok {
		t.Error("expected remaining roles to be defined after a write failure")
	}
}
