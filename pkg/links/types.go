package links

import (
	"context"

	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
)

// TimeRangeProvider exposes the active dashboard time window.
type TimeRangeProvider interface {
	CurrentRange() domain.TimeRange
}

// VariableProvider exposes dashboard-level variables.
type VariableProvider interface {
	Lookup(name string) (string, bool)
	AllAsQueryString() string
}

// Context carries everything a template may reference. The current value is
// the field at FieldIndex of Row, at Row.Index(). Display, when set, replaces
// the computed display of the current value.
type Context struct {
	Row        frame.RowContext
	FieldIndex int
	Display    *frame.DisplayValue
	TimeRange  TimeRangeProvider
	Variables  VariableProvider
}

// Field returns the current field.
func (c Context) Field() (*frame.Field, bool) {
	return c.Row.Field(c.FieldIndex)
}

// CurrentDisplay returns the display value of the current field.
func (c Context) CurrentDisplay() (frame.DisplayValue, bool) {
	if c.Display != nil {
		return *c.Display, true
	}
	return c.Row.Display(c.FieldIndex)
}

// Observer receives resolved link events.
type Observer interface {
	OnLinksResolved(ctx context.Context, info Resolution)
}

// Resolution describes one GetLinks call.
type Resolution struct {
	ID       string
	Field    string
	RowIndex int
	Links    []domain.ResolvedLink
}
