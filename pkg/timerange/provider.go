package timerange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/links"
)

// ErrInvalidBound is returned for raw bounds that are not "now" or "now-<duration>".
var ErrInvalidBound = errors.New("timerange: invalid relative bound")

// Static serves a fixed range snapshot.
type Static struct {
	Range domain.TimeRange
}

var _ links.TimeRangeProvider = Static{}

// CurrentRange returns the snapshot.
func (s Static) CurrentRange() domain.TimeRange {
	return s.Range
}

// Absolute builds a provider for fixed bounds.
func Absolute(from, to time.Time) Static {
	return Static{Range: domain.TimeRange{From: from, To: to}}
}

// Relative builds a provider for bounds such as "now-6h" and "now". The raw
// bounds are kept for URLs; the absolute ones are evaluated against clock.
func Relative(from, to string, clock func() time.Time) (Static, error) {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	fromAt, err := parseBound(from, now)
	if err != nil {
		return Static{}, err
	}
	toAt, err := parseBound(to, now)
	if err != nil {
		return Static{}, err
	}
	return Static{Range: domain.TimeRange{
		From: fromAt,
		To:   toAt,
		Raw:  domain.RawTimeRange{From: strings.TrimSpace(from), To: strings.TrimSpace(to)},
	}}, nil
}

func parseBound(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "now" {
		return now, nil
	}
	offset, ok := strings.CutPrefix(raw, "now-")
	if !ok || offset == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBound, raw)
	}
	dur, err := parseOffset(offset)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBound, raw)
	}
	return now.Add(-dur), nil
}

// parseOffset extends time.ParseDuration with day and week units.
func parseOffset(offset string) (time.Duration, error) {
	for suffix, unit := range map[string]time.Duration{"d": 24 * time.Hour, "w": 7 * 24 * time.Hour} {
		if n, ok := strings.CutSuffix(offset, suffix); ok {
			count, err := strconv.Atoi(n)
			if err != nil || count < 0 {
				return 0, fmt.Errorf("invalid offset %q", offset)
			}
			return time.Duration(count) * unit, nil
		}
	}
	return time.ParseDuration(offset)
}
