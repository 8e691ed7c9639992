package linkbuilder

import (
	"github.com/goliatone/go-datalinks/internal/interpolate"
	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/links"
)

// TemplateResolver substitutes tokens in one template.
type TemplateResolver interface {
	Resolve(template string, ctx links.Context) string
}

// Builder turns link configs into resolved links.
type Builder struct {
	resolver TemplateResolver
}

// Option configures the builder.
type Option func(*Builder)

// WithResolver overrides the token resolver.
func WithResolver(resolver TemplateResolver) Option {
	return func(b *Builder) {
		if resolver != nil {
			b.resolver = resolver
		}
	}
}

// New creates a builder backed by the built-in token resolver.
func New(opts ...Option) *Builder {
	builder := &Builder{resolver: interpolate.New()}
	for _, opt := range opts {
		if opt != nil {
			opt(builder)
		}
	}
	return builder
}

// Build resolves every config in order. No sorting, no deduplication; zero
// configs yield an empty slice.
func (b *Builder) Build(configs []domain.LinkConfig, ctx links.Context) []domain.ResolvedLink {
	out := make([]domain.ResolvedLink, 0, len(configs))
	if len(configs) == 0 {
		return out
	}
	resolver := b.templateResolver()
	for _, cfg := range configs {
		out = append(out, domain.ResolvedLink{
			Title:  resolver.Resolve(cfg.Title, ctx),
			Href:   resolver.Resolve(cfg.URL, ctx),
			Target: cfg.Target(),
		})
	}
	return out
}

func (b *Builder) templateResolver() TemplateResolver {
	if b == nil || b.resolver == nil {
		return interpolate.New()
	}
	return b.resolver
}
