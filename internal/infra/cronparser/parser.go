package cronparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var ErrInvalidSchedule = errors.New("invalid restart schedule")

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parser computes restart schedule occurrences using go-cron.
type Parser struct{}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{}
}

// NextAfter returns the next occurrence strictly after `after`.
// If tz is non-empty and the spec has no CRON_TZ=/TZ= prefix, it prepends CRON_TZ=<tz>.
// Defaults to UTC when no tz is given.
func (p *Parser) NextAfter(
	spec,
	tz string,
	after time.Time,
) (time.Time, error) {
	schedule, err := parse(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.Next(after), nil
}

// Upcoming returns the next n occurrences after `after`, in order.
func (p *Parser) Upcoming(
	spec,
	tz string,
	after time.Time,
	n int,
) ([]time.Time, error) {
	schedule, err := parse(spec, tz)
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, n)

	for range n {
		after = schedule.Next(after)
		if after.IsZero() {
			break
		}

		out = append(out, after)
	}

	return out, nil
}

func parse(spec, tz string) (cron.Schedule, error) {
	schedule, err := _parser.Parse(buildSpec(strings.TrimSpace(spec), tz))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, spec, err)
	}

	return schedule, nil
}

func buildSpec(spec, tz string) string {
	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if hasTZPrefix {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
