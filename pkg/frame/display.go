package frame

import (
	"strconv"
	"strings"

	i18n "github.com/goliatone/go-i18n"
)

// DisplayValue is the formatted rendering of a raw value.
type DisplayValue struct {
	Prefix     string
	Text       string
	Suffix     string
	Numeric    float64
	HasNumeric bool
}

// String joins prefix, text and suffix.
func (d DisplayValue) String() string {
	return d.Prefix + d.Text + d.Suffix
}

// DisplayProcessor turns a raw value into a DisplayValue.
type DisplayProcessor func(value any) DisplayValue

type displayOptions struct {
	locale   string
	decimals int
}

// DisplayOption configures the default display processor.
type DisplayOption func(*displayOptions)

// WithLocale sets the locale passed to the go-i18n formatters.
func WithLocale(locale string) DisplayOption {
	locale = strings.TrimSpace(locale)
	return func(o *displayOptions) {
		if locale != "" {
			o.locale = locale
		}
	}
}

// WithDecimals sets the fallback decimals used when a field declares none.
// Negative values trim trailing zeros.
func WithDecimals(decimals int) DisplayOption {
	return func(o *displayOptions) {
		o.decimals = decimals
	}
}

// NewDisplayProcessor builds the default processor for field, honoring its
// unit and decimals.
func NewDisplayProcessor(field *Field, opts ...DisplayOption) DisplayProcessor {
	settings := displayOptions{locale: "en", decimals: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	var cfg FieldConfig
	fieldType := FieldTypeOther
	if field != nil {
		cfg = field.Config
		fieldType = field.ResolvedType()
	}
	decimals := settings.decimals
	if cfg.Decimals != nil {
		decimals = *cfg.Decimals
	}
	prefix, suffix := unitAffixes(cfg.Unit)

	return func(value any) DisplayValue {
		if value == nil {
			return DisplayValue{}
		}
		if fieldType == FieldTypeTime {
			if ts, ok := AsTime(value); ok {
				return DisplayValue{
					Text:       i18n.FormatDateTime(settings.locale, ts.UTC()),
					Numeric:    float64(ts.UnixMilli()),
					HasNumeric: true,
				}
			}
		}
		if _, isString := value.(string); !isString {
			if num, ok := AsFloat(value); ok {
				return DisplayValue{
					Prefix:     prefix,
					Text:       i18n.FormatNumber(settings.locale, num, decimals),
					Suffix:     suffix,
					Numeric:    num,
					HasNumeric: true,
				}
			}
		}
		if b, ok := value.(bool); ok {
			return DisplayValue{Text: strconv.FormatBool(b)}
		}
		return DisplayValue{Prefix: prefix, Text: RawString(value), Suffix: suffix}
	}
}

// WithDisplay returns a shallow copy of fr where every field without a
// processor gets the default one. Values are shared, fr is not modified.
func WithDisplay(fr *Frame, opts ...DisplayOption) *Frame {
	if fr == nil {
		return nil
	}
	out := &Frame{Name: fr.Name, Fields: make([]*Field, len(fr.Fields))}
	for i, field := range fr.Fields {
		out.Fields[i] = FieldWithDisplay(field, opts...)
	}
	return out
}

// FieldWithDisplay is WithDisplay for a single field.
func FieldWithDisplay(field *Field, opts ...DisplayOption) *Field {
	if field == nil || field.Display != nil {
		return field
	}
	next := *field
	next.Display = NewDisplayProcessor(field, opts...)
	return &next
}

var unitTable = map[string][2]string{
	"none":        {"", ""},
	"short":       {"", ""},
	"percent":     {"", "%"},
	"currencyUSD": {"$", ""},
	"currencyEUR": {"€", ""},
	"currencyGBP": {"£", ""},
}

func unitAffixes(unit string) (string, string) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "", ""
	}
	if affixes, ok := unitTable[unit]; ok {
		return affixes[0], affixes[1]
	}
	return "", " " + unit
}
