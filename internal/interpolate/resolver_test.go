package interpolate

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/links"
)

type stubVariables map[string]string

func (s stubVariables) Lookup(name string) (string, bool) {
	value, ok := s[name]
	return value, ok
}

func (s stubVariables) AllAsQueryString() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, "var-"+k+"="+s[k])
	}
	return strings.Join(parts, "&")
}

type stubRange domain.TimeRange

func (s stubRange) CurrentRange() domain.TimeRange { return domain.TimeRange(s) }

func intPtr(v int) *int { return &v }

func powerFrame() *frame.Frame {
	return &frame.Frame{
		Fields: []*frame.Field{
			{Name: "Time", Values: []any{1, 2, 3}},
			{
				Name:   "Power",
				Values: []any{100.2000001, 200, 300},
				Config: frame.FieldConfig{Unit: "kW", Decimals: intPtr(3)},
			},
			{Name: "Last", Values: []any{"a", "b", "c"}},
		},
	}
}

func rowContext(fr *frame.Frame, row, field int) links.Context {
	return links.Context{Row: frame.NewRowContext(fr, row), FieldIndex: field}
}

func TestResolveCellReferences(t *testing.T) {
	resolver := New()
	ctx := rowContext(powerFrame(), 0, 2)

	cases := []struct {
		template string
		want     string
	}{
		{"http://go/${__cell.Power}", "http://go/100.200 kW"},
		{"http://go/${__cell.Power.numeric}", "http://go/100.2000001"},
		{"http://go/${__cell.Power.text}", "http://go/100.200"},
		{"http://go/${__cell.1}", "http://go/100.200 kW"},
		{"http://go/${__cell.1.text}", "http://go/100.200"},
		{"http://go/${__cell[1]}", "http://go/${__cell[1]}"},
		{"http://go/${__cell.XYZ}", "http://go/${__cell.XYZ}"},
		{"http://go/${__cell.9}", "http://go/${__cell.9}"},
		{"http://go/${__cell.-1}", "http://go/${__cell.-1}"},
		{"http://go/${__cell.}", "http://go/${__cell.}"},
		{"http://go/${__cell.Last}", "http://go/a"},
		{"http://go/${__cell.Last.numeric}", "http://go/a"},
		{"${__cell.Time.numeric}-${__cell.Last}", "1-a"},
	}

	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			if got := resolver.Resolve(tc.template, ctx); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveCellNamePrecedesIndex(t *testing.T) {
	fr := &frame.Frame{Fields: []*frame.Field{
		{Name: "first", Values: []any{"by-index"}},
		{Name: "0", Values: []any{"by-name"}},
	}}
	got := New().Resolve("${__cell.0}", rowContext(fr, 0, 0))
	if got != "by-name" {
		t.Fatalf("expected name lookup to win, got %q", got)
	}
}

func TestResolveCellDuplicateNamesFirstWins(t *testing.T) {
	fr := &frame.Frame{Fields: []*frame.Field{
		{Name: "dup", Values: []any{"one"}},
		{Name: "dup", Values: []any{"two"}},
	}}
	if got := New().Resolve("${__cell.dup}", rowContext(fr, 0, 0)); got != "one" {
		t.Fatalf("expected first duplicate, got %q", got)
	}
}

func TestLookupStrategiesInIsolation(t *testing.T) {
	row := frame.NewRowContext(powerFrame(), 0)

	if col, done := lookupByName.lookup(row, "Power"); !done || col != 1 {
		t.Fatalf("byName expected column 1, got %d %v", col, done)
	}
	if _, done := lookupByName.lookup(row, "1"); done {
		t.Fatalf("byName should not match an index")
	}
	if col, done := lookupByIndex.lookup(row, "2"); !done || col != 2 {
		t.Fatalf("byIndex expected column 2, got %d %v", col, done)
	}
	for _, ref := range []string{"3", "+1", "1.5", "Power", ""} {
		if _, done := lookupByIndex.lookup(row, ref); done {
			t.Fatalf("byIndex should reject %q", ref)
		}
	}
	if col, done := lookupUnresolved.lookup(row, "anything"); !done || col >= 0 {
		t.Fatalf("unresolved should terminate with a negative column, got %d %v", col, done)
	}

	names := make([]string, 0, len(cellLookupOrder))
	for _, strategy := range cellLookupOrder {
		names = append(names, strategy.name)
	}
	if got := strings.Join(names, ","); got != "byName,byIndex,unresolved" {
		t.Fatalf("unexpected lookup order %s", got)
	}
}

func TestResolveValueTokens(t *testing.T) {
	resolver := New()
	fr := powerFrame()

	power := rowContext(fr, 0, 1)
	cases := map[string]string{
		"${__value.raw}":     "100.2000001",
		"${__value.numeric}": "100.2000001",
		"${__value.text}":    "100.200",
		"${__field.name}":    "Power",
		"${__series.name}":   "Power",
	}
	for template, want := range cases {
		if got := resolver.Resolve(template, power); got != want {
			t.Fatalf("%s: expected %q, got %q", template, want, got)
		}
	}

	last := rowContext(fr, 2, 2)
	if got := resolver.Resolve("${__value.raw}/${__value.numeric}", last); got != "c/c" {
		t.Fatalf("expected numeric fallback to raw text, got %q", got)
	}

	single := links.Context{Row: frame.SingleFieldRow(&frame.Field{Name: "test field", Values: []any{1, 2, 3}}, 2)}
	if got := resolver.Resolve("http://domain.com/${__value.raw}", single); got != "http://domain.com/3" {
		t.Fatalf("expected raw value 3, got %q", got)
	}

	outOfRange := links.Context{Row: frame.SingleFieldRow(&frame.Field{Name: "x", Values: []any{1}}, 5)}
	if got := resolver.Resolve("${__value.raw}", outOfRange); got != "${__value.raw}" {
		t.Fatalf("expected out of range value to stay literal, got %q", got)
	}
}

func TestResolveValueTextPrefersSuppliedDisplay(t *testing.T) {
	ctx := rowContext(powerFrame(), 0, 1)
	ctx.Display = &frame.DisplayValue{Text: "override", Suffix: " kW"}
	if got := New().Resolve("${__value.text}", ctx); got != "override" {
		t.Fatalf("expected supplied display text, got %q", got)
	}
}

func TestResolveValueTime(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	fr := &frame.Frame{
		Name: "cpu",
		Fields: []*frame.Field{
			{Name: "Time", Type: frame.FieldTypeTime, Values: []any{ts}},
			{Name: "Value", Values: []any{1.5}},
		},
	}
	resolver := New()
	want := "1577934245000"
	if got := resolver.Resolve("${__value.time}", rowContext(fr, 0, 1)); got != want {
		t.Fatalf("expected %s, got %q", want, got)
	}
	if got := resolver.Resolve("${__series.name}", rowContext(fr, 0, 1)); got != "cpu" {
		t.Fatalf("expected series name cpu, got %q", got)
	}

	noTime := rowContext(powerFrame(), 0, 1)
	if got := resolver.Resolve("${__value.time}", noTime); got != "${__value.time}" {
		t.Fatalf("expected literal without time field, got %q", got)
	}
}

func TestResolveFieldLabels(t *testing.T) {
	fr := &frame.Frame{Fields: []*frame.Field{
		{Name: "Value", Labels: map[string]string{"host": "web-1"}, Values: []any{1}},
	}}
	ctx := rowContext(fr, 0, 0)
	if got := New().Resolve("${__field.labels.host}/${__field.labels.zone}", ctx); got != "web-1/${__field.labels.zone}" {
		t.Fatalf("unexpected label resolution %q", got)
	}
}

func TestResolveCollaboratorTokens(t *testing.T) {
	resolver := New()
	ctx := rowContext(powerFrame(), 0, 2)
	ctx.Variables = stubVariables{"region": "eu", "env": "prod"}
	ctx.TimeRange = stubRange{
		From: time.UnixMilli(1500000000000),
		To:   time.UnixMilli(1500000060000),
	}

	got := resolver.Resolve("/d?${__url_time_range}&${__all_variables}&r=${region}&m=${missing}", ctx)
	want := "/d?from=1500000000000&to=1500000060000&var-env=prod&var-region=eu&r=eu&m=${missing}"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	ctx.TimeRange = stubRange{Raw: domain.RawTimeRange{From: "now-6h", To: "now"}}
	if got := resolver.Resolve("${__url_time_range}", ctx); got != "from=now-6h&to=now" {
		t.Fatalf("expected raw range, got %q", got)
	}
}

func TestResolveWithoutCollaborators(t *testing.T) {
	ctx := rowContext(powerFrame(), 0, 2)
	template := "${__url_time_range}|${__all_variables}|${region}"
	if got := New().Resolve(template, ctx); got != template {
		t.Fatalf("expected tokens to stay literal, got %q", got)
	}
}

func TestResolveRoundTripAndIdempotence(t *testing.T) {
	resolver := New()
	ctx := rowContext(powerFrame(), 0, 2)
	ctx.Variables = stubVariables{"region": "eu"}

	plain := "http://example.com/path?q=1&x={y}$z"
	if got := resolver.Resolve(plain, ctx); got != plain {
		t.Fatalf("expected template without tokens unchanged, got %q", got)
	}

	once := resolver.Resolve("http://go/${__cell.Power}/${region}/${__cell.XYZ}/${oops", ctx)
	twice := resolver.Resolve(once, ctx)
	if once != twice {
		t.Fatalf("expected idempotent resolution, got %q then %q", once, twice)
	}
	if once != "http://go/100.200 kW/eu/${__cell.XYZ}/${oops" {
		t.Fatalf("unexpected resolution %q", once)
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	fr := powerFrame()
	ctx := rowContext(fr, 0, 1)
	resolver := New()
	first := resolver.Resolve("${__cell.Power}|${__value.raw}", ctx)
	second := resolver.Resolve("${__cell.Power}|${__value.raw}", ctx)
	if first != second {
		t.Fatalf("expected repeatable output, got %q vs %q", first, second)
	}
	if fr.Fields[1].Values[0] != 100.2000001 {
		t.Fatalf("expected frame values untouched")
	}
}
