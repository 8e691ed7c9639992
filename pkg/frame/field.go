package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-datalinks/pkg/domain"
)

// FieldType classifies the values carried by a field.
type FieldType string

const (
	FieldTypeOther   FieldType = ""
	FieldTypeNumber  FieldType = "number"
	FieldTypeString  FieldType = "string"
	FieldTypeTime    FieldType = "time"
	FieldTypeBoolean FieldType = "boolean"
)

// FieldConfig holds the per-field display and link settings.
type FieldConfig struct {
	DisplayName string              `json:"displayName,omitempty"`
	Unit        string              `json:"unit,omitempty"`
	Decimals    *int                `json:"decimals,omitempty"`
	Links       []domain.LinkConfig `json:"links,omitempty"`
}

// Field is one column of a frame.
type Field struct {
	Name    string            `json:"name"`
	Type    FieldType         `json:"type,omitempty"`
	Config  FieldConfig       `json:"config"`
	Labels  map[string]string `json:"labels,omitempty"`
	Values  []any             `json:"values"`
	Display DisplayProcessor  `json:"-"`
}

// Len returns the number of values in the field.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Values)
}

// DisplayName prefers the configured display name over the raw name.
func (f *Field) DisplayName() string {
	if f == nil {
		return ""
	}
	if name := strings.TrimSpace(f.Config.DisplayName); name != "" {
		return name
	}
	return f.Name
}

// ValueAt returns the raw value at row, reporting false when row is out of range.
func (f *Field) ValueAt(row int) (any, bool) {
	if f == nil || row < 0 || row >= len(f.Values) {
		return nil, false
	}
	return f.Values[row], true
}

// DisplayAt formats the value at row. Fields without a processor use the
// default one for the "en" locale.
func (f *Field) DisplayAt(row int) (DisplayValue, bool) {
	value, ok := f.ValueAt(row)
	if !ok {
		return DisplayValue{}, false
	}
	display := f.Display
	if display == nil {
		display = NewDisplayProcessor(f)
	}
	return display(value), true
}

// ResolvedType returns the declared type or infers it from the first non-nil value.
func (f *Field) ResolvedType() FieldType {
	if f == nil {
		return FieldTypeOther
	}
	if f.Type != FieldTypeOther {
		return f.Type
	}
	for _, value := range f.Values {
		if value == nil {
			continue
		}
		return inferType(value)
	}
	return FieldTypeOther
}

// Frame is a named set of equally indexed fields.
type Frame struct {
	Name   string   `json:"name,omitempty"`
	Fields []*Field `json:"fields"`
}

// Len returns the number of rows, taken from the longest field.
func (fr *Frame) Len() int {
	if fr == nil {
		return 0
	}
	rows := 0
	for _, field := range fr.Fields {
		if n := field.Len(); n > rows {
			rows = n
		}
	}
	return rows
}

func inferType(value any) FieldType {
	switch value.(type) {
	case time.Time, *time.Time:
		return FieldTypeTime
	case bool:
		return FieldTypeBoolean
	case string:
		return FieldTypeString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return FieldTypeNumber
	default:
		return FieldTypeOther
	}
}

// RawString converts a raw value into its natural, unformatted string form.
func RawString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case time.Time:
		return strconv.FormatInt(v.UnixMilli(), 10)
	case *time.Time:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(v.UnixMilli(), 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// AsFloat coerces numeric values and numeric strings. Non-finite results and
// everything else report false.
func AsFloat(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int8:
		out = float64(v)
	case int16:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case uint8:
		out = float64(v)
	case uint16:
		out = float64(v)
	case uint32:
		out = float64(v)
	case uint64:
		out = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

// AsTime converts time values and epoch milliseconds into a time.Time.
func AsTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	ms, ok := AsFloat(value)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
