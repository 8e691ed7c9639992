// Package links defines the contracts shared by data-link resolution.
// Collaborators (time range, dashboard variables) are injected through
// Context; nil collaborators leave their tokens unresolved.
// NopObserver provides a default no-op observer.
package links
