package diagnostic_test

import (
	"testing"

	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/host/hosttest"
)

func newCache(h *hosttest.Host) *diagnostic.SummaryCache {
	return diagnostic.NewSummaryCache(h, h, host.VimMarkup{})
}

func TestUpdate_OrdersSeveritiesAndCounts(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{
		{Severity: diagnostic.SeverityHint},
		{Severity: diagnostic.SeverityError},
		{Severity: diagnostic.SeverityWarn},
		{Severity: diagnostic.SeverityError},
	})

	c := newCache(h)
	c.Update(eid)

	want := "%#StatuslineError# E 2 %#StatuslineWarn# W 1 %#StatuslineHint# H 1 %*"
	if got := c.Get(eid); got != want {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestUpdate_NoDiagnosticsStoresEmpty(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")

	c := newCache(h)
	c.Update(eid)

	if got := c.Get(eid); got != "" {
		t.Errorf("Get() = %q, want empty", got)
	}
}

func TestUpdate_UnknownSeveritiesDropped(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{
		{Severity: diagnostic.Severity(0)},
		{Severity: diagnostic.Severity(9)},
	})

	c := newCache(h)
	c.Update(eid)

	if got := c.Get(eid); got != "" {
		t.Errorf("Get() = %q, want empty for unrecognized severities", got)
	}
}

func TestUpdate_StaleEntityIsNoOp(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityError}})

	c := newCache(h)
	c.Update(eid)
	before := c.Get(eid)

	h.Destroy(eid)
	c.Update(eid)

	if got := c.Get(eid); got != before {
		t.Errorf("Get() after stale update = %q, want unchanged %q", got, before)
	}
	c.Update(host.EntityID(0))
	c.Update(host.EntityID(-3))
}

func TestGet_CoherentBetweenEvents(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityWarn}})

	c := newCache(h)
	c.Update(eid)

	// The host may mutate the diagnostic list between events; Get must keep
	// returning what the last Update computed.
	first := c.Get(eid)
	h.Open("/tmp/other.go", "go") // unrelated host activity
	for i := 0; i < 5; i++ {
		if got := c.Get(eid); got != first {
			t.Fatalf("Get() #%d = %q, want %q", i, got, first)
		}
	}
}

func TestEvict(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityError}})

	c := newCache(h)
	c.Update(eid)
	c.Evict(eid)

	if got := c.Get(eid); got != "" {
		t.Errorf("Get() after evict = %q, want empty", got)
	}
	// Idempotent, including for never-cached handles.
	c.Evict(eid)
	c.Evict(host.EntityID(999))
}

func TestGet_AbsentIsEmpty(t *testing.T) {
	h := hosttest.New()
	c := newCache(h)
	if got := c.Get(host.EntityID(42)); got != "" {
		t.Errorf("Get() = %q, want empty", got)
	}
}

func TestWithSymbols(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityError}})

	c := diagnostic.NewSummaryCache(h, h, host.VimMarkup{}, diagnostic.WithSymbols(map[diagnostic.Severity]string{
		diagnostic.SeverityError: "✗",
	}))
	c.Update(eid)

	want := "%#StatuslineError# ✗ 1 %*"
	if got := c.Get(eid); got != want {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestClear(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/main.go", "go")
	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityInfo}})

	c := newCache(h)
	c.Update(eid)
	c.Clear()

	if got := c.Get(eid); got != "" {
		t.Errorf("Get() after clear = %q, want empty", got)
	}
}
