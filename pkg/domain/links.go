package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Target is the browsing context a resolved link opens in.
type Target string

const (
	// TargetSelf opens the link in the current tab.
	TargetSelf Target = "_self"
	// TargetBlank opens the link in a new tab.
	TargetBlank Target = "_blank"
)

// LinkConfig is an operator-authored data link attached to a field.
// Title and URL are templates that may reference ${...} tokens.
type LinkConfig struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	TargetBlank bool   `json:"targetBlank,omitempty"`
}

// Target reports where the link should open.
func (c LinkConfig) Target() Target {
	if c.TargetBlank {
		return TargetBlank
	}
	return TargetSelf
}

// ResolvedLink is a fully interpolated link ready to render as an anchor.
type ResolvedLink struct {
	Title  string `json:"title"`
	Href   string `json:"href"`
	Target Target `json:"target"`
}

// RawTimeRange keeps the user-facing range bounds (e.g. "now-6h").
// Empty bounds fall back to the absolute timestamps.
type RawTimeRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TimeRange is the active dashboard time window.
type TimeRange struct {
	From time.Time    `json:"from"`
	To   time.Time    `json:"to"`
	Raw  RawTimeRange `json:"raw"`
}

// IsZero reports whether neither bound is set.
func (r TimeRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero() && r.Raw.From == "" && r.Raw.To == ""
}

// URLEncoded renders the range as a query fragment: from=<bound>&to=<bound>.
// Relative raw bounds are kept verbatim, absolute bounds use epoch milliseconds.
func (r TimeRange) URLEncoded() string {
	return "from=" + url.QueryEscape(rangeBound(r.Raw.From, r.From)) +
		"&to=" + url.QueryEscape(rangeBound(r.Raw.To, r.To))
}

func rangeBound(raw string, at time.Time) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	if at.IsZero() {
		return ""
	}
	return strconv.FormatInt(at.UnixMilli(), 10)
}
