package suppliers

import (
	"context"
	"fmt"

	"github.com/goliatone/go-datalinks/internal/interpolate"
	"github.com/goliatone/go-datalinks/internal/linkbuilder"
	"github.com/goliatone/go-datalinks/internal/redact"
	"github.com/goliatone/go-datalinks/pkg/config"
	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/links"
	"github.com/goliatone/go-datalinks/pkg/variables"
	"github.com/google/uuid"
)

// Resolver maps to the built-in token resolver.
type Resolver = interpolate.Resolver

// NewResolver returns the built-in token resolver.
func NewResolver() *Resolver {
	return interpolate.New()
}

// Service hands out link suppliers bound to shared collaborators.
type Service struct {
	timeRange links.TimeRangeProvider
	variables links.VariableProvider
	logger    logger.Logger
	observer  links.Observer
	builder   *linkbuilder.Builder
	config    config.Config
	display   []frame.DisplayOption
}

// Dependencies wires collaborators into the service. Every field is optional;
// a nil Config means config.Defaults().
type Dependencies struct {
	TimeRange links.TimeRangeProvider
	Variables links.VariableProvider
	Logger    logger.Logger
	Observer  links.Observer
	Resolver  linkbuilder.TemplateResolver
	Config    *config.Config
}

// FieldDisplay identifies one rendered value of a frame. A nil Display means
// the value is formatted by the field's processor.
type FieldDisplay struct {
	Name     string
	Frame    *frame.Frame
	RowIndex int
	ColIndex int
	Display  *frame.DisplayValue
}

// New instantiates the supplier service.
func New(deps Dependencies) (*Service, error) {
	cfg := config.Defaults()
	if deps.Config != nil {
		cfg = *deps.Config
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("suppliers: invalid config: %w", err)
		}
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Observer == nil {
		deps.Observer = &links.NopObserver{}
	}
	if provider, ok := deps.Variables.(*variables.Provider); ok && provider != nil {
		deps.Variables = provider.WithQueryPrefix(cfg.Variables.QueryPrefix)
	}

	return &Service{
		timeRange: deps.TimeRange,
		variables: deps.Variables,
		logger:    deps.Logger,
		observer:  deps.Observer,
		builder:   linkbuilder.New(linkbuilder.WithResolver(deps.Resolver)),
		config:    cfg,
		display: []frame.DisplayOption{
			frame.WithLocale(cfg.Formatting.Locale),
			frame.WithDecimals(cfg.DecimalsOrDefault()),
		},
	}, nil
}

// ForField returns a supplier whose templates only see field.
func (s *Service) ForField(field *frame.Field, rowIndex int) *Supplier {
	if s == nil || field == nil {
		return nil
	}
	return &Supplier{
		svc:      s,
		name:     field.DisplayName(),
		field:    field,
		rowIndex: rowIndex,
		configs:  field.Config.Links,
	}
}

// ForDisplay returns a supplier whose templates see every field of the row.
// Links come from the field at d.ColIndex.
func (s *Service) ForDisplay(d FieldDisplay) *Supplier {
	if s == nil || d.Frame == nil {
		return nil
	}
	if d.ColIndex < 0 || d.ColIndex >= len(d.Frame.Fields) || d.Frame.Fields[d.ColIndex] == nil {
		return nil
	}
	field := d.Frame.Fields[d.ColIndex]
	name := d.Name
	if name == "" {
		name = field.DisplayName()
	}
	return &Supplier{
		svc:      s,
		name:     name,
		frame:    d.Frame,
		colIndex: d.ColIndex,
		rowIndex: d.RowIndex,
		display:  d.Display,
		configs:  field.Config.Links,
	}
}

// LinksFromField resolves the links of field at rowIndex right away.
func (s *Service) LinksFromField(field *frame.Field, rowIndex int) []domain.ResolvedLink {
	return s.ForField(field, rowIndex).GetLinks(nil)
}

func (s *Service) notify(ctx context.Context, sup *Supplier, resolved []domain.ResolvedLink) {
	if !s.config.Links.Observe && !s.config.Links.LogResolved {
		return
	}
	id := uuid.NewString()

	if s.config.Links.LogResolved {
		logger.With(s.logger.WithContext(ctx), map[string]any{
			"resolution": id,
			"field":      sup.name,
			"row":        sup.rowIndex,
		}).Debug("data links resolved", "count", len(resolved), "hrefs", redact.Links(resolved))
	}
	if s.config.Links.Observe {
		snapshot := make([]domain.ResolvedLink, len(resolved))
		copy(snapshot, resolved)
		s.observer.OnLinksResolved(ctx, links.Resolution{
			ID:       id,
			Field:    sup.name,
			RowIndex: sup.rowIndex,
			Links:    snapshot,
		})
	}
}
