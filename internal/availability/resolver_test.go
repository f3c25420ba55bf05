package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday, which keeps weekday math readable below.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func allWeekSchedule() Schedule {
	return Schedule{
		ManualOpen:  true,
		OpeningTime: "08:00",
		ClosingTime: "23:00",
		WorkingDays: "0,1,2,3,4,5,6",
	}
}

func TestResolveStatusTemporaryClosureWinsOverEverything(t *testing.T) {
	r := NewResolver(English(), 0)
	schedules := []Schedule{
		{TemporarilyClosed: true},
		{TemporarilyClosed: true, ManualOpen: true, OpeningTime: "00:00", ClosingTime: "23:59", WorkingDays: "0,1,2,3,4,5,6"},
		{TemporarilyClosed: true, TemporaryCloseReason: "نفدت المكونات", ManualOpen: true},
	}
	for _, s := range schedules {
		status := r.ResolveStatus(s, at(3, 14, 0))
		require.False(t, status.Open)
		assert.Equal(t, ColorRed, status.Color)
		assert.Empty(t, status.CloseTime)
	}
}

func TestResolveStatusTemporaryClosureUsesReason(t *testing.T) {
	r := NewResolver(English(), 0)
	status := r.ResolveStatus(Schedule{TemporarilyClosed: true, TemporaryCloseReason: "out of ingredients"}, at(3, 14, 0))
	assert.Equal(t, "out of ingredients", status.Message)

	status = r.ResolveStatus(Schedule{TemporarilyClosed: true}, at(3, 14, 0))
	assert.Equal(t, "The restaurant is temporarily closed", status.Message)
}

func TestResolveStatusManualCloseOverridesSchedule(t *testing.T) {
	r := NewResolver(English(), 0)
	s := allWeekSchedule()
	s.ManualOpen = false
	status := r.ResolveStatus(s, at(3, 14, 0))
	require.False(t, status.Open)
	assert.Equal(t, ColorRed, status.Color)
	assert.Equal(t, "The restaurant is currently closed", status.Message)
}

func TestResolveStatusOpenMidWindow(t *testing.T) {
	r := NewResolver(English(), 0)
	// Wednesday 14:00.
	status := r.ResolveStatus(allWeekSchedule(), at(3, 14, 0))
	require.True(t, status.Open)
	assert.Equal(t, ColorGreen, status.Color)
	assert.Equal(t, "23:00", status.CloseTime)
	assert.Equal(t, "Open until 23:00", status.Message)
	assert.Empty(t, status.NextOpenTime)
}

func TestResolveStatusClosingSoon(t *testing.T) {
	r := NewResolver(English(), 30)
	// Wednesday 22:45, 15 minutes to close.
	status := r.ResolveStatus(allWeekSchedule(), at(3, 22, 45))
	require.True(t, status.Open)
	assert.Equal(t, ColorYellow, status.Color)
	assert.Equal(t, "23:00", status.CloseTime)
}

func TestResolveStatusClosingSoonBoundary(t *testing.T) {
	r := NewResolver(English(), 30)
	// Exactly 30 minutes to close is still "closing soon".
	status := r.ResolveStatus(allWeekSchedule(), at(3, 22, 30))
	assert.Equal(t, ColorYellow, status.Color)
	// 31 minutes to close is not.
	status = r.ResolveStatus(allWeekSchedule(), at(3, 22, 29))
	assert.Equal(t, ColorGreen, status.Color)
}

func TestResolveStatusWeekendOnlyQueriedOnMonday(t *testing.T) {
	r := NewResolver(English(), 0)
	s := allWeekSchedule()
	s.WorkingDays = "5,6"
	// Monday.
	status := r.ResolveStatus(s, at(1, 12, 0))
	require.False(t, status.Open)
	assert.Equal(t, ColorRed, status.Color)
	assert.Equal(t, "Friday 08:00", status.NextOpenTime)
	assert.Equal(t, "Closed today, opens Friday at 08:00", status.Message)
}

func TestResolveStatusOvernightWindow(t *testing.T) {
	r := NewResolver(English(), 30)
	s := Schedule{
		ManualOpen:  true,
		OpeningTime: "22:00",
		ClosingTime: "02:00",
		WorkingDays: "0,1,2,3,4,5,6",
	}

	// 01:00 is inside the wrapped window with 60 minutes to close.
	status := r.ResolveStatus(s, at(3, 1, 0))
	require.True(t, status.Open)
	assert.Equal(t, ColorGreen, status.Color)
	assert.Equal(t, "02:00", status.CloseTime)

	// 01:45 is 15 minutes to close.
	status = r.ResolveStatus(s, at(3, 1, 45))
	require.True(t, status.Open)
	assert.Equal(t, ColorYellow, status.Color)

	// 23:30 is inside the window on the near side of midnight.
	status = r.ResolveStatus(s, at(3, 23, 30))
	require.True(t, status.Open)
	assert.Equal(t, ColorGreen, status.Color)

	// 12:00 is outside and before the same-day opening.
	status = r.ResolveStatus(s, at(3, 12, 0))
	require.False(t, status.Open)
	assert.Equal(t, "today 22:00", status.NextOpenTime)
}

func TestResolveStatusBeforeOpeningSameDay(t *testing.T) {
	r := NewResolver(English(), 0)
	status := r.ResolveStatus(allWeekSchedule(), at(3, 6, 30))
	require.False(t, status.Open)
	assert.Equal(t, ColorRed, status.Color)
	assert.Equal(t, "today 08:00", status.NextOpenTime)
	assert.Equal(t, "Closed now, opens today at 08:00", status.Message)
}

func TestResolveStatusAfterClosingUsesTomorrowLabel(t *testing.T) {
	r := NewResolver(English(), 0)
	// Wednesday 23:30, open every day: next opening is literally tomorrow.
	status := r.ResolveStatus(allWeekSchedule(), at(3, 23, 30))
	require.False(t, status.Open)
	assert.Equal(t, "tomorrow 08:00", status.NextOpenTime)
	assert.Equal(t, "Closed now, opens tomorrow at 08:00", status.Message)
}

func TestResolveStatusAfterClosingSkipsToNamedDay(t *testing.T) {
	r := NewResolver(English(), 0)
	s := allWeekSchedule()
	// Friday only; queried Friday night after close: next Friday is 7 days out.
	s.WorkingDays = "5"
	status := r.ResolveStatus(s, at(5, 23, 30))
	require.False(t, status.Open)
	assert.Equal(t, "Friday 08:00", status.NextOpenTime)
	assert.Equal(t, "Closed today, opens Friday at 08:00", status.Message)
}

func TestResolveStatusDefaultsForMissingFields(t *testing.T) {
	r := NewResolver(English(), 0)
	// Only the manual toggle set: defaults 08:00–23:00, all week.
	status := r.ResolveStatus(Schedule{ManualOpen: true}, at(3, 14, 0))
	require.True(t, status.Open)
	assert.Equal(t, "23:00", status.CloseTime)

	status = r.ResolveStatus(Schedule{ManualOpen: true}, at(3, 7, 0))
	require.False(t, status.Open)
	assert.Equal(t, "today 08:00", status.NextOpenTime)
}

func TestResolveStatusMalformedFieldsDoNotPanic(t *testing.T) {
	r := NewResolver(English(), 0)
	s := Schedule{
		ManualOpen:  true,
		OpeningTime: "not-a-time",
		ClosingTime: "99:99",
		WorkingDays: "seven,eight,-1,42",
	}
	require.NotPanics(t, func() {
		status := r.ResolveStatus(s, at(3, 14, 0))
		// Defaults kick in: 08:00–23:00 every day.
		assert.True(t, status.Open)
		assert.Equal(t, "23:00", status.CloseTime)
	})
}

func TestResolveStatusEqualOpenCloseMeansAlwaysOpen(t *testing.T) {
	r := NewResolver(English(), 0)
	s := Schedule{
		ManualOpen:  true,
		OpeningTime: "10:00",
		ClosingTime: "10:00",
		WorkingDays: "0,1,2,3,4,5,6",
	}
	for _, now := range []time.Time{at(3, 0, 0), at(3, 9, 59), at(3, 12, 0), at(3, 23, 59)} {
		status := r.ResolveStatus(s, now)
		assert.True(t, status.Open, "expected open at %s", now)
	}
}

func TestResolveStatusArabicDayNames(t *testing.T) {
	r := NewResolver(Arabic(), 0)
	s := allWeekSchedule()
	s.WorkingDays = "5,6"
	// Monday; next open day is Friday (الجمعة).
	status := r.ResolveStatus(s, at(1, 12, 0))
	require.False(t, status.Open)
	assert.Equal(t, "الجمعة 08:00", status.NextOpenTime)
}

func TestResolveOrderEligibilityMirrorsStatus(t *testing.T) {
	r := NewResolver(English(), 0)

	open := r.ResolveOrderEligibility(allWeekSchedule(), at(3, 14, 0))
	require.True(t, open.CanOrder)
	assert.Empty(t, open.Message)

	s := allWeekSchedule()
	s.TemporarilyClosed = true
	closed := r.ResolveOrderEligibility(s, at(3, 14, 0))
	require.False(t, closed.CanOrder)
	assert.Equal(t, "Sorry, you cannot order right now. The restaurant is temporarily closed", closed.Message)
}

func TestResolveStatusIsIdempotent(t *testing.T) {
	r := NewResolver(Arabic(), 30)
	s := Schedule{
		ManualOpen:  true,
		OpeningTime: "22:00",
		ClosingTime: "02:00",
		WorkingDays: "1,3,5",
	}
	now := at(3, 22, 45)
	first := r.ResolveStatus(s, now)
	second := r.ResolveStatus(s, now)
	assert.Equal(t, first, second)

	e1 := r.ResolveOrderEligibility(s, now)
	e2 := r.ResolveOrderEligibility(s, now)
	assert.Equal(t, e1, e2)
}

func TestNewResolverFallbacks(t *testing.T) {
	r := NewResolver(nil, -5)
	require.NotNil(t, r.Locale())
	assert.Equal(t, "ar", r.Locale().Name)
	// Default 30-minute window applies.
	status := r.ResolveStatus(allWeekSchedule(), at(3, 22, 45))
	assert.Equal(t, ColorYellow, status.Color)
}
