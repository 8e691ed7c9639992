package links

import "context"

// NopObserver implements Observer without side effects.
type NopObserver struct{}

var _ Observer = (*NopObserver)(nil)

// OnLinksResolved ignores the link resolution event.
func (n *NopObserver) OnLinksResolved(ctx context.Context, info Resolution) {}
