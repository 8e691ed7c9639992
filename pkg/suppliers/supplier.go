package suppliers

import (
	"context"

	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/links"
	"github.com/goliatone/go-datalinks/pkg/variables"
)

// Supplier resolves the links of one value. Nothing is resolved until
// GetLinks is called, and every call resolves again.
type Supplier struct {
	svc      *Service
	name     string
	field    *frame.Field
	frame    *frame.Frame
	colIndex int
	rowIndex int
	display  *frame.DisplayValue
	configs  []domain.LinkConfig
}

// GetLinks resolves the links using a background context.
func (s *Supplier) GetLinks(extra map[string]string) []domain.ResolvedLink {
	return s.GetLinksContext(context.Background(), extra)
}

// GetLinksContext resolves every configured link in order. extra shadows
// dashboard variables for this call only.
func (s *Supplier) GetLinksContext(ctx context.Context, extra map[string]string) []domain.ResolvedLink {
	if s == nil || s.svc == nil {
		return []domain.ResolvedLink{}
	}
	if len(s.configs) == 0 {
		return []domain.ResolvedLink{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resolved := s.svc.builder.Build(s.configs, s.context(extra))
	s.svc.notify(ctx, s, resolved)
	return resolved
}

// Len reports the number of configured links.
func (s *Supplier) Len() int {
	if s == nil {
		return 0
	}
	return len(s.configs)
}

func (s *Supplier) context(extra map[string]string) links.Context {
	ctx := links.Context{
		Display:   s.display,
		TimeRange: s.svc.timeRange,
		Variables: variables.Overlay(s.svc.variables, extra),
	}
	if s.frame != nil {
		ctx.Row = frame.NewRowContext(frame.WithDisplay(s.frame, s.svc.display...), s.rowIndex)
		ctx.FieldIndex = s.colIndex
		return ctx
	}
	ctx.Row = frame.SingleFieldRow(frame.FieldWithDisplay(s.field, s.svc.display...), s.rowIndex)
	return ctx
}
