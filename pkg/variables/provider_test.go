package variables

import (
	"testing"

	opts "github.com/goliatone/go-options"
)

func TestNewProviderMergesScopes(t *testing.T) {
	provider, err := NewProvider(
		Snapshot{
			Scope: DashboardScope(),
			Data: map[string]any{
				"region": "eu",
				"env":    "prod",
			},
		},
		Snapshot{
			Scope: PanelScope(),
			Data: map[string]any{
				"env": "staging",
			},
		},
	)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if value, ok := provider.Lookup("env"); !ok || value != "staging" {
		t.Fatalf("expected panel override staging, got %q %v", value, ok)
	}
	if value, ok := provider.Lookup("region"); !ok || value != "eu" {
		t.Fatalf("expected region eu, got %q %v", value, ok)
	}
	if _, ok := provider.Lookup("missing"); ok {
		t.Fatalf("expected missing variable lookup to fail")
	}
	if got := provider.AllAsQueryString(); got != "var-env=staging&var-region=eu" {
		t.Fatalf("unexpected query string %q", got)
	}
	if _, err := provider.Trace("env"); err != nil {
		t.Fatalf("trace: %v", err)
	}
}

func TestNewProviderValidation(t *testing.T) {
	if _, err := NewProvider(); err != ErrNoSnapshots {
		t.Fatalf("expected ErrNoSnapshots, got %v", err)
	}
	if _, err := NewProvider(Snapshot{Scope: opts.Scope{}, Data: map[string]any{}}); err == nil {
		t.Fatalf("expected error for missing scope name")
	}
}

func TestQueryStringEscapingAndMultiValues(t *testing.T) {
	provider, err := NewProvider(Snapshot{
		Scope: DashboardScope(),
		Data: map[string]any{
			"host":  []any{"a b", "c&d"},
			"query": "x=1",
		},
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if got := provider.AllAsQueryString(); got != "var-host=a+b&var-host=c%26d&var-query=x%3D1" {
		t.Fatalf("unexpected query string %q", got)
	}
	if value, _ := provider.Lookup("host"); value != "a b,c&d" {
		t.Fatalf("expected joined multi value, got %q", value)
	}

	custom := provider.WithQueryPrefix("")
	if got := custom.AllAsQueryString(); got != "host=a+b&host=c%26d&query=x%3D1" {
		t.Fatalf("unexpected prefixless query string %q", got)
	}
	if got := provider.AllAsQueryString(); got != "var-host=a+b&var-host=c%26d&var-query=x%3D1" {
		t.Fatalf("expected original provider untouched, got %q", got)
	}
}

func TestWithExtrasShadowLookupOnly(t *testing.T) {
	base, err := FromValues(map[string]string{"region": "eu"})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	augmented := base.With(map[string]string{"region": "us", "__extra": "1"})

	if value, _ := augmented.Lookup("region"); value != "us" {
		t.Fatalf("expected extra to shadow region, got %q", value)
	}
	if value, _ := augmented.Lookup("__extra"); value != "1" {
		t.Fatalf("expected extra variable, got %q", value)
	}
	if got := augmented.AllAsQueryString(); got != "var-region=eu" {
		t.Fatalf("expected extras excluded from the query string, got %q", got)
	}
	if value, _ := base.Lookup("region"); value != "eu" {
		t.Fatalf("expected base provider untouched, got %q", value)
	}
	if _, ok := base.Lookup("__extra"); ok {
		t.Fatalf("expected extras not to leak into base")
	}

	again := augmented.With(map[string]string{"other": "x"})
	if _, ok := again.Lookup("__extra"); ok {
		t.Fatalf("expected previous request extras to be replaced")
	}
}

type mapProvider map[string]string

func (m mapProvider) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapProvider) AllAsQueryString() string { return "base" }

func TestOverlay(t *testing.T) {
	base := mapProvider{"a": "1", "b": "2"}
	if Overlay(base, nil) == nil {
		t.Fatalf("expected base to be returned for empty extras")
	}

	over := Overlay(base, map[string]string{"b": "override"})
	if value, _ := over.Lookup("a"); value != "1" {
		t.Fatalf("expected fallthrough to base, got %q", value)
	}
	if value, _ := over.Lookup("b"); value != "override" {
		t.Fatalf("expected override, got %q", value)
	}
	if over.AllAsQueryString() != "base" {
		t.Fatalf("expected base query string")
	}

	orphan := Overlay(nil, map[string]string{"c": "3"})
	if value, ok := orphan.Lookup("c"); !ok || value != "3" {
		t.Fatalf("expected extra lookup without base, got %q %v", value, ok)
	}

	provider, err := FromValues(map[string]string{"a": "x"})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	layered := Overlay(provider, map[string]string{"a": "y"})
	if _, ok := layered.(*Provider); !ok {
		t.Fatalf("expected go-options provider to layer natively, got %T", layered)
	}
}

func TestQueryStringKeepsDottedNames(t *testing.T) {
	provider, err := NewProvider(
		Snapshot{Scope: DashboardScope(), Data: map[string]any{
			"region": "eu",
			"a.b":    "dotted",
			"hosts":  []any{"w1", "w2"},
		}},
		Snapshot{Scope: PanelScope(), Data: map[string]any{
			"a.b": "panel",
		}},
	)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	want := "var-a.b=panel&var-hosts=w1&var-hosts=w2&var-region=eu"
	if got := provider.AllAsQueryString(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	augmented := provider.With(map[string]string{"a.b": "request", "extra": "1"})
	if got := augmented.AllAsQueryString(); got != want {
		t.Fatalf("expected extras excluded, got %q", got)
	}
}
