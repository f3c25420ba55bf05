// Package availability decides whether a restaurant is open and whether a new
// order may be placed, given its configured schedule and the current time. The
// resolver is a pure function of its inputs: no clock reads, no I/O, no state.
package availability

import (
	"fmt"
	"time"
)

// Defaults substituted for absent schedule fields.
const (
	DefaultOpeningTime = "08:00"
	DefaultClosingTime = "23:00"

	// DefaultClosingSoonMinutes is the window before closing during which the
	// status turns yellow.
	DefaultClosingSoonMinutes = 30

	minutesPerDay = 24 * 60
)

// Schedule is the availability-relevant subset of a restaurant record.
type Schedule struct {
	// ManualOpen is the staff-controlled open/closed toggle.
	ManualOpen bool
	// TemporarilyClosed overrides everything else when set.
	TemporarilyClosed    bool
	TemporaryCloseReason string
	// OpeningTime and ClosingTime are "HH:MM" 24h strings. A closing time
	// numerically before the opening time expresses an overnight window.
	OpeningTime string
	ClosingTime string
	// WorkingDays is the raw comma-separated weekday list (0 = Sunday).
	WorkingDays string
}

// StatusColor is a traffic-light UI hint.
type StatusColor string

const (
	ColorGreen  StatusColor = "green"
	ColorYellow StatusColor = "yellow"
	ColorRed    StatusColor = "red"
)

// Status is the derived, ephemeral availability result. It is recomputed on
// every call and never persisted.
type Status struct {
	Open bool
	// NextOpenTime is a human-readable reopening hint, set only when closed.
	NextOpenTime string
	// CloseTime is the configured closing time, set only when open.
	CloseTime string
	Message   string
	Color     StatusColor
}

// Eligibility is the order-placement decision derived from Status.
type Eligibility struct {
	CanOrder bool
	// Message is the customer-facing refusal, set only when CanOrder is false.
	Message string
}

// Resolver computes availability statuses for a fixed locale and
// closing-soon window.
type Resolver struct {
	locale      *Locale
	closingSoon int
}

// NewResolver builds a resolver. A nil locale falls back to Arabic and a
// non-positive closing-soon window falls back to 30 minutes.
func NewResolver(locale *Locale, closingSoonMinutes int) *Resolver {
	if locale == nil {
		locale = Arabic()
	}
	if closingSoonMinutes <= 0 {
		closingSoonMinutes = DefaultClosingSoonMinutes
	}
	return &Resolver{locale: locale, closingSoon: closingSoonMinutes}
}

// Locale exposes the resolver's display locale.
func (r *Resolver) Locale() *Locale {
	return r.locale
}

// ResolveStatus evaluates the closure rules in strict precedence order:
// temporary closure, manual toggle, working day, time window. First match
// wins. The function is total: malformed optional fields fall back to the
// documented defaults and never fail resolution.
func (r *Resolver) ResolveStatus(s Schedule, now time.Time) Status {
	if s.TemporarilyClosed {
		return Status{
			Open:    false,
			Message: r.locale.temporarilyClosed(s.TemporaryCloseReason),
			Color:   ColorRed,
		}
	}

	if !s.ManualOpen {
		return Status{
			Open:    false,
			Message: r.locale.closed(),
			Color:   ColorRed,
		}
	}

	opening := normalizeTime(s.OpeningTime, DefaultOpeningTime)
	closing := normalizeTime(s.ClosingTime, DefaultClosingTime)
	openingMinutes := mustMinutes(opening)
	closingMinutes := mustMinutes(closing)

	days := ParseWorkingDays(s.WorkingDays)
	currentDay := now.Weekday()

	if !days.Contains(currentDay) {
		return r.closedUntilNextDay(days, currentDay, opening)
	}

	currentMinutes := now.Hour()*60 + now.Minute()

	if inWindow(currentMinutes, openingMinutes, closingMinutes) {
		untilClose := minutesUntilClose(currentMinutes, closingMinutes)
		if untilClose <= r.closingSoon {
			return Status{
				Open:      true,
				CloseTime: closing,
				Message:   r.locale.closingSoon(closing),
				Color:     ColorYellow,
			}
		}
		return Status{
			Open:      true,
			CloseTime: closing,
			Message:   r.locale.openUntil(closing),
			Color:     ColorGreen,
		}
	}

	if currentMinutes < openingMinutes {
		// Before today's window: reopening is later the same day.
		return Status{
			Open:         false,
			NextOpenTime: fmt.Sprintf("%s %s", r.locale.Today, opening),
			Message:      r.locale.opensLaterToday(opening),
			Color:        ColorRed,
		}
	}

	// After today's window: reopening is on the next working day.
	return r.closedUntilTomorrowOrLater(days, currentDay, opening)
}

// ResolveOrderEligibility maps the availability status onto the order gate.
// canOrder is true iff the restaurant is open; otherwise the status message is
// wrapped in the customer-facing refusal sentence.
func (r *Resolver) ResolveOrderEligibility(s Schedule, now time.Time) Eligibility {
	status := r.ResolveStatus(s, now)
	if status.Open {
		return Eligibility{CanOrder: true}
	}
	return Eligibility{
		CanOrder: false,
		Message:  r.locale.cannotOrder(status.Message),
	}
}

// closedUntilNextDay handles "not a working day today": scan forward up to a
// week for the next scheduled day.
func (r *Resolver) closedUntilNextDay(days WorkingDays, currentDay time.Weekday, opening string) Status {
	nextDay, _, ok := days.Next(currentDay, 1)
	if !ok {
		// Unreachable with a parsed set (parse never yields an empty week),
		// kept as a safe fallback.
		return Status{Open: false, Message: r.locale.closed(), Color: ColorRed}
	}
	return Status{
		Open:         false,
		NextOpenTime: fmt.Sprintf("%s %s", r.locale.DayName(nextDay), opening),
		Message:      r.locale.opensOnDay(nextDay, opening),
		Color:        ColorRed,
	}
}

// closedUntilTomorrowOrLater handles "after today's closing". The "tomorrow"
// wording is used only when the next working day is literally the next
// calendar day.
func (r *Resolver) closedUntilTomorrowOrLater(days WorkingDays, currentDay time.Weekday, opening string) Status {
	nextDay, offset, ok := days.Next(currentDay, 1)
	if !ok {
		return Status{Open: false, Message: r.locale.closed(), Color: ColorRed}
	}
	if offset == 1 {
		return Status{
			Open:         false,
			NextOpenTime: fmt.Sprintf("%s %s", r.locale.Tomorrow, opening),
			Message:      r.locale.opensTomorrow(opening),
			Color:        ColorRed,
		}
	}
	return Status{
		Open:         false,
		NextOpenTime: fmt.Sprintf("%s %s", r.locale.DayName(nextDay), opening),
		Message:      r.locale.opensOnDay(nextDay, opening),
		Color:        ColorRed,
	}
}

// inWindow tests whether the current minute-of-day falls inside the open
// interval. When the closing minute is not after the opening minute the
// window wraps midnight; equality therefore degenerates to an always-open
// day, which matches the historical behaviour for 24-hour restaurants.
func inWindow(current, opening, closing int) bool {
	if closing <= opening {
		return current >= opening || current <= closing
	}
	return current >= opening && current <= closing
}

// minutesUntilClose accounts for windows that wrap midnight.
func minutesUntilClose(current, closing int) int {
	if closing < current {
		return (minutesPerDay - current) + closing
	}
	return closing - current
}

// normalizeTime returns the raw "HH:MM" value when well-formed, otherwise the
// fallback.
func normalizeTime(raw, fallback string) string {
	if _, ok := parseMinutes(raw); ok {
		return raw
	}
	return fallback
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(raw string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(raw, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// mustMinutes parses a value already normalized by normalizeTime.
func mustMinutes(value string) int {
	minutes, _ := parseMinutes(value)
	return minutes
}
