package interpolate

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-datalinks/pkg/frame"
)

const cellPrefix = "__cell."

type cellSuffix int

const (
	cellFull cellSuffix = iota
	cellNumeric
	cellText
)

var cellSuffixes = []struct {
	text   string
	suffix cellSuffix
}{
	{".numeric", cellNumeric},
	{".text", cellText},
}

// cellRef is a parsed __cell.<ref>[.<suffix>] token body.
type cellRef struct {
	ref    string
	suffix cellSuffix
}

func parseCellRef(name string) (cellRef, bool) {
	body, ok := strings.CutPrefix(name, cellPrefix)
	if !ok {
		return cellRef{}, false
	}
	ref := cellRef{ref: body, suffix: cellFull}
	for _, candidate := range cellSuffixes {
		if trimmed, found := strings.CutSuffix(body, candidate.text); found {
			ref = cellRef{ref: trimmed, suffix: candidate.suffix}
			break
		}
	}
	if ref.ref == "" {
		return cellRef{}, false
	}
	return ref, true
}

// lookupStrategy maps a reference to a column. done stops the chain; a done
// result with a negative column means the reference stays unresolved.
type lookupStrategy struct {
	name   string
	lookup func(row frame.RowContext, ref string) (column int, done bool)
}

var (
	lookupByName = lookupStrategy{
		name: "byName",
		lookup: func(row frame.RowContext, ref string) (int, bool) {
			return row.FieldByName(ref)
		},
	}
	lookupByIndex = lookupStrategy{
		name: "byIndex",
		lookup: func(row frame.RowContext, ref string) (int, bool) {
			if !isDecimal(ref) {
				return -1, false
			}
			idx, err := strconv.Atoi(ref)
			if err != nil || idx >= row.Len() {
				return -1, false
			}
			return idx, true
		},
	}
	lookupUnresolved = lookupStrategy{
		name: "unresolved",
		lookup: func(frame.RowContext, string) (int, bool) {
			return -1, true
		},
	}
)

// cellLookupOrder is the tie-break order for __cell references.
var cellLookupOrder = []lookupStrategy{lookupByName, lookupByIndex, lookupUnresolved}

func locateCell(row frame.RowContext, ref string) (int, bool) {
	for _, strategy := range cellLookupOrder {
		if column, done := strategy.lookup(row, ref); done {
			return column, column >= 0
		}
	}
	return -1, false
}

func resolveCell(row frame.RowContext, ref cellRef) (string, bool) {
	column, ok := locateCell(row, ref.ref)
	if !ok {
		return "", false
	}
	switch ref.suffix {
	case cellNumeric:
		raw, ok := row.Raw(column)
		if !ok {
			return "", false
		}
		return numericString(raw), true
	case cellText:
		display, ok := row.Display(column)
		if !ok {
			return "", false
		}
		return display.Text, true
	default:
		display, ok := row.Display(column)
		if !ok {
			return "", false
		}
		return display.String(), true
	}
}

// numericString keeps numbers in their natural form and coerces numeric
// strings, falling back to the raw text.
func numericString(raw any) string {
	if s, isString := raw.(string); isString {
		if num, ok := frame.AsFloat(s); ok {
			return strconv.FormatFloat(num, 'f', -1, 64)
		}
		return s
	}
	if _, ok := frame.AsFloat(raw); ok {
		return frame.RawString(raw)
	}
	if ts, ok := frame.AsTime(raw); ok {
		return strconv.FormatInt(ts.UnixMilli(), 10)
	}
	return frame.RawString(raw)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
