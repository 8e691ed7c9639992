package di

import (
	"reflect"

	"github.com/goliatone/go-datalinks/pkg/commands"
	"github.com/goliatone/go-datalinks/pkg/config"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/links"
	"github.com/goliatone/go-datalinks/pkg/suppliers"
	"github.com/goliatone/go-datalinks/pkg/variables"
)

// Options configure the DI container.
type Options struct {
	Config    config.Config
	Logger    logger.Logger
	Observer  links.Observer
	TimeRange links.TimeRangeProvider
	// Variables wins over VariableSnapshots when both are set.
	Variables         links.VariableProvider
	VariableSnapshots []variables.Snapshot
}

// Container wires providers, the supplier service and commands.
type Container struct {
	Config    config.Config
	Variables links.VariableProvider
	TimeRange links.TimeRangeProvider
	Links     *suppliers.Service
	Commands  *commands.Registry
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	vars := opts.Variables
	if vars == nil && len(opts.VariableSnapshots) > 0 {
		provider, err := variables.NewProvider(opts.VariableSnapshots...)
		if err != nil {
			return nil, err
		}
		vars = provider
	}

	linkSvc, err := suppliers.New(suppliers.Dependencies{
		TimeRange: opts.TimeRange,
		Variables: vars,
		Logger:    lgr,
		Observer:  opts.Observer,
		Config:    &cfg,
	})
	if err != nil {
		return nil, err
	}

	cmdRegistry, err := commands.New(commands.Dependencies{
		Links:  linkSvc,
		Logger: lgr,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:    cfg,
		Variables: vars,
		TimeRange: opts.TimeRange,
		Links:     linkSvc,
		Commands:  cmdRegistry,
	}, nil
}
