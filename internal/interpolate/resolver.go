package interpolate

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/links"
)

// Built-in token names, matched exactly.
const (
	TokenValueRaw     = "__value.raw"
	TokenValueNumeric = "__value.numeric"
	TokenValueText    = "__value.text"
	TokenValueTime    = "__value.time"
	TokenSeriesName   = "__series.name"
	TokenFieldName    = "__field.name"
	TokenURLTimeRange = "__url_time_range"
	TokenAllVariables = "__all_variables"
	fieldLabelsPrefix = "__field.labels."
)

// tokenFunc resolves one token body; false leaves the token verbatim.
type tokenFunc func(name string, ctx links.Context) (string, bool)

// prefixArm resolves a family of tokens sharing a prefix.
type prefixArm struct {
	prefix  string
	resolve tokenFunc
}

// Resolver substitutes ${...} tokens in link templates. It holds no state
// between calls and is safe for concurrent use.
type Resolver struct {
	fixed    map[string]tokenFunc
	prefixes []prefixArm
}

// New builds a resolver with the built-in data-link tokens.
func New() *Resolver {
	return &Resolver{
		fixed: map[string]tokenFunc{
			TokenValueRaw:     valueRaw,
			TokenValueNumeric: valueNumeric,
			TokenValueText:    valueText,
			TokenValueTime:    valueTime,
			TokenSeriesName:   seriesName,
			TokenFieldName:    fieldName,
			TokenURLTimeRange: urlTimeRange,
			TokenAllVariables: allVariables,
		},
		prefixes: []prefixArm{
			{prefix: cellPrefix, resolve: cell},
			{prefix: fieldLabelsPrefix, resolve: fieldLabel},
		},
	}
}

// Resolve replaces every recognized token in template. Unknown, unresolvable
// and unterminated tokens are kept as written.
func (r *Resolver) Resolve(template string, ctx links.Context) string {
	if !strings.Contains(template, tokenOpen) {
		return template
	}
	var out strings.Builder
	out.Grow(len(template))

	scanner := NewScanner(template)
	for seg, ok := scanner.Next(); ok; seg, ok = scanner.Next() {
		if seg.Kind == SegmentLiteral {
			out.WriteString(seg.Text)
			continue
		}
		if value, resolved := r.resolveToken(seg.Name, ctx); resolved {
			out.WriteString(value)
			continue
		}
		out.WriteString(seg.Text)
	}
	return out.String()
}

func (r *Resolver) resolveToken(name string, ctx links.Context) (string, bool) {
	if fn, ok := r.fixed[name]; ok {
		return fn(name, ctx)
	}
	for _, arm := range r.prefixes {
		if strings.HasPrefix(name, arm.prefix) {
			return arm.resolve(name, ctx)
		}
	}
	return variable(name, ctx)
}

func valueRaw(_ string, ctx links.Context) (string, bool) {
	raw, ok := ctx.Row.Raw(ctx.FieldIndex)
	if !ok {
		return "", false
	}
	return frame.RawString(raw), true
}

func valueNumeric(_ string, ctx links.Context) (string, bool) {
	raw, ok := ctx.Row.Raw(ctx.FieldIndex)
	if !ok {
		return "", false
	}
	return numericString(raw), true
}

func valueText(_ string, ctx links.Context) (string, bool) {
	display, ok := ctx.CurrentDisplay()
	if !ok {
		return "", false
	}
	return display.Text, true
}

func valueTime(_ string, ctx links.Context) (string, bool) {
	column, ok := ctx.Row.TimeField(ctx.FieldIndex)
	if !ok {
		return "", false
	}
	raw, ok := ctx.Row.Raw(column)
	if !ok {
		return "", false
	}
	ts, ok := frame.AsTime(raw)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(ts.UnixMilli(), 10), true
}

func seriesName(_ string, ctx links.Context) (string, bool) {
	if series := ctx.Row.SeriesName(); series != "" {
		return series, true
	}
	return fieldName("", ctx)
}

func fieldName(_ string, ctx links.Context) (string, bool) {
	field, ok := ctx.Field()
	if !ok {
		return "", false
	}
	return field.DisplayName(), true
}

func fieldLabel(name string, ctx links.Context) (string, bool) {
	field, ok := ctx.Field()
	if !ok {
		return "", false
	}
	value, ok := field.Labels[strings.TrimPrefix(name, fieldLabelsPrefix)]
	return value, ok
}

func urlTimeRange(_ string, ctx links.Context) (string, bool) {
	if ctx.TimeRange == nil {
		return "", false
	}
	current := ctx.TimeRange.CurrentRange()
	if current.IsZero() {
		return "", false
	}
	return current.URLEncoded(), true
}

func allVariables(_ string, ctx links.Context) (string, bool) {
	if ctx.Variables == nil {
		return "", false
	}
	return ctx.Variables.AllAsQueryString(), true
}

func cell(name string, ctx links.Context) (string, bool) {
	ref, ok := parseCellRef(name)
	if !ok {
		return "", false
	}
	return resolveCell(ctx.Row, ref)
}

func variable(name string, ctx links.Context) (string, bool) {
	if ctx.Variables == nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	return ctx.Variables.Lookup(name)
}
