package variables

import "github.com/goliatone/go-datalinks/pkg/links"

// Overlay returns a provider where extra shadows base for Lookup only.
// AllAsQueryString keeps reporting base, since extras are request scoped.
func Overlay(base links.VariableProvider, extra map[string]string) links.VariableProvider {
	if len(extra) == 0 {
		return base
	}
	if provider, ok := base.(*Provider); ok && provider != nil {
		return provider.With(extra)
	}
	return overlay{base: base, extra: copyValues(extra)}
}

type overlay struct {
	base  links.VariableProvider
	extra map[string]string
}

func (o overlay) Lookup(name string) (string, bool) {
	if value, ok := o.extra[name]; ok {
		return value, true
	}
	if o.base == nil {
		return "", false
	}
	return o.base.Lookup(name)
}

func (o overlay) AllAsQueryString() string {
	if o.base == nil {
		return ""
	}
	return o.base.AllAsQueryString()
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
