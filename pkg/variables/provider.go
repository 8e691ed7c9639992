package variables

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-datalinks/pkg/links"
	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// DefaultQueryPrefix is prepended to variable names in AllAsQueryString.
const DefaultQueryPrefix = "var-"

// Snapshot captures the variables defined at one scope.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

var (
	// ErrNoSnapshots signals that at least one snapshot must be provided.
	ErrNoSnapshots = errors.New("variables: at least one snapshot is required")
)

// DashboardScope holds dashboard template variables.
func DashboardScope() opts.Scope {
	return opts.NewScope("dashboard", opts.ScopePrioritySystem, opts.WithScopeLabel("Dashboard"))
}

// PanelScope holds panel-level overrides of dashboard variables.
func PanelScope() opts.Scope {
	return opts.NewScope("panel", opts.ScopePriorityTenant, opts.WithScopeLabel("Panel"))
}

// RequestScope holds variables supplied for a single GetLinks call.
func RequestScope() opts.Scope {
	return opts.NewScope("request", opts.ScopePriorityUser, opts.WithScopeLabel("Request"))
}

// Provider resolves variables through go-options scope layers. Higher
// priority scopes win. It is immutable and safe for concurrent readers.
type Provider struct {
	snapshots []Snapshot
	options   *opts.Options[map[string]any]
	dashboard []Snapshot
	names     []string
	prefix    string
}

var _ links.VariableProvider = (*Provider)(nil)

// NewProvider merges the snapshots ordered by scope priority. Every key of
// every snapshot is part of AllAsQueryString.
func NewProvider(snapshots ...Snapshot) (*Provider, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}
	options, err := merge(snapshots)
	if err != nil {
		return nil, err
	}
	return &Provider{
		snapshots: snapshots,
		options:   options,
		dashboard: byPriority(snapshots),
		names:     collectNames(snapshots),
		prefix:    DefaultQueryPrefix,
	}, nil
}

// FromValues builds a provider with a single dashboard scope.
func FromValues(values map[string]string) (*Provider, error) {
	data := make(map[string]any, len(values))
	for k, v := range values {
		data[k] = v
	}
	return NewProvider(Snapshot{Scope: DashboardScope(), Data: data})
}

// WithQueryPrefix returns a copy using prefix in AllAsQueryString.
func (p *Provider) WithQueryPrefix(prefix string) *Provider {
	if p == nil {
		return nil
	}
	next := *p
	next.prefix = prefix
	return &next
}

// With returns a provider where extra shadows existing variables for Lookup.
// The extras are scoped to the request and do not show in AllAsQueryString.
func (p *Provider) With(extra map[string]string) *Provider {
	if p == nil || len(extra) == 0 {
		return p
	}
	data := make(map[string]any, len(extra))
	for k, v := range extra {
		data[k] = v
	}
	snapshots := make([]Snapshot, 0, len(p.snapshots)+1)
	for _, snap := range p.snapshots {
		if snap.Scope.Name == RequestScope().Name {
			continue
		}
		snapshots = append(snapshots, snap)
	}
	snapshots = append(snapshots, Snapshot{Scope: RequestScope(), Data: data})

	options, err := merge(snapshots)
	if err != nil {
		return p
	}
	next := *p
	next.snapshots = snapshots
	next.options = options
	return &next
}

// Lookup returns the value of name. Multi-value variables are joined with commas.
func (p *Provider) Lookup(name string) (string, bool) {
	if p == nil || p.options == nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	value, _, err := p.options.ResolveWithTrace(name)
	if err != nil || value == nil {
		return "", false
	}
	values, ok := stringValues(value)
	if !ok {
		return "", false
	}
	return strings.Join(values, ","), true
}

// Trace exposes the go-options trace for name, useful when debugging which
// scope supplied a value.
func (p *Provider) Trace(name string) (opts.Trace, error) {
	if p == nil || p.options == nil {
		return opts.Trace{Path: name}, fmt.Errorf("variables: provider not initialised")
	}
	_, trace, err := p.options.ResolveWithTrace(name)
	return trace, err
}

// AllAsQueryString serializes every variable as prefix+name=value pairs,
// sorted by name. Multi-value variables repeat the key.
func (p *Provider) AllAsQueryString() string {
	if p == nil || len(p.dashboard) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.names))
	for _, name := range p.names {
		value, ok := p.definedValue(name)
		if !ok {
			continue
		}
		values, ok := stringValues(value)
		if !ok {
			continue
		}
		key := url.QueryEscape(p.prefix + name)
		for _, v := range values {
			parts = append(parts, key+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(parts, "&")
}

// definedValue reads name from the highest priority snapshot defining it.
// Names are read as keys, not paths, so dotted names are kept.
func (p *Provider) definedValue(name string) (any, bool) {
	for _, snap := range p.dashboard {
		if value, ok := snap.Data[name]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// byPriority orders snapshots highest priority first.
func byPriority(snapshots []Snapshot) []Snapshot {
	out := append([]Snapshot(nil), snapshots...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Scope.Priority > out[j].Scope.Priority
	})
	return out
}

func merge(snapshots []Snapshot) (*opts.Options[map[string]any], error) {
	layers := make([]opts.Layer[map[string]any], 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Scope.Name == "" {
			return nil, fmt.Errorf("variables: snapshot scope name is required")
		}
		layerOpts := []opts.LayerOption[map[string]any]{}
		if snap.SnapshotID != "" {
			layerOpts = append(layerOpts, opts.WithSnapshotID[map[string]any](snap.SnapshotID))
		}
		layers = append(layers, opts.NewLayer(snap.Scope, cloneMap(snap.Data), layerOpts...))
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	return stack.Merge()
}

func collectNames(snapshots []Snapshot) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, snap := range snapshots {
		for name := range snap.Data {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func stringValues(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	case map[string]any:
		return nil, false
	default:
		return []string{fmt.Sprint(v)}, true
	}
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	return layering.Clone(src)
}
