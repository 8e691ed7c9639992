package datalinks

import (
	"github.com/goliatone/go-datalinks/internal/di"
	"github.com/goliatone/go-datalinks/pkg/commands"
	"github.com/goliatone/go-datalinks/pkg/config"
	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/links"
	"github.com/goliatone/go-datalinks/pkg/suppliers"
	"github.com/goliatone/go-datalinks/pkg/variables"
)

// ModuleOptions configure the data links module facade.
type ModuleOptions struct {
	Config            config.Config
	Logger            logger.Logger
	Observer          links.Observer
	TimeRange         links.TimeRangeProvider
	Variables         links.VariableProvider
	VariableSnapshots []variables.Snapshot
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles providers, the supplier service and commands.
func NewModule(opts ModuleOptions) (*Module, error) {
	container, err := di.New(di.Options{
		Config:            opts.Config,
		Logger:            opts.Logger,
		Observer:          opts.Observer,
		TimeRange:         opts.TimeRange,
		Variables:         opts.Variables,
		VariableSnapshots: opts.VariableSnapshots,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Links returns the supplier service.
func (m *Module) Links() *suppliers.Service {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Links
}

// Commands returns the go-command registry.
func (m *Module) Commands() *commands.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil || m.container == nil {
		return config.Config{}
	}
	return m.container.Config
}

// ForDisplay is a shortcut for Links().ForDisplay.
func (m *Module) ForDisplay(d suppliers.FieldDisplay) *suppliers.Supplier {
	return m.Links().ForDisplay(d)
}

// LinksFromField resolves the links of field at rowIndex right away.
func (m *Module) LinksFromField(field *frame.Field, rowIndex int) []domain.ResolvedLink {
	svc := m.Links()
	if svc == nil {
		return []domain.ResolvedLink{}
	}
	return svc.LinksFromField(field, rowIndex)
}
