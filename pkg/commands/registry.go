package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-datalinks/internal/commands"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/suppliers"
)

// Re-export request types so consumers need not import internal packages.
type (
	ResolveLinks      = internalcommands.ResolveLinks
	ResolveFieldLinks = internalcommands.ResolveFieldLinks
)

// Registry exposes go-command compatible handlers backed by the supplier service.
type Registry struct {
	Catalog           *internalcommands.Catalog
	ResolveLinks      command.Commander[ResolveLinks]
	ResolveFieldLinks command.Commander[ResolveFieldLinks]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Links  *suppliers.Service
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	internalDeps := internalcommands.Dependencies{Logger: deps.Logger}
	if deps.Links != nil {
		internalDeps.Links = deps.Links
	}
	catalog, err := internalcommands.NewCatalog(internalDeps)
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:           catalog,
		ResolveLinks:      catalog.ResolveLinks,
		ResolveFieldLinks: catalog.ResolveFieldLinks,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.ResolveLinks,
		r.ResolveFieldLinks,
	}
}
