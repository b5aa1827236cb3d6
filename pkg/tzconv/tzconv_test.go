package tzconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newYork = "America/New_York"

func TestStoreLocalToUTC_RegularTime(t *testing.T) {
	got, err := StoreLocalToUTC("2025-01-13T09:00:00", newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC), got)

	got, err = StoreLocalToUTC("2025-07-14T09:00:00", newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 14, 13, 0, 0, 0, time.UTC), got)
}

func TestStoreLocalToUTC_SpringForwardGapSkipsForward(t *testing.T) {
	// 2025-03-09 02:00 EST -> 03:00 EDT, 02:30 не существует
	got, err := StoreLocalToUTC("2025-03-09T02:30:00", newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 7, 30, 0, 0, time.UTC), got)

	parts, err := ToStoreLocal(got, newYork)
	require.NoError(t, err)
	assert.Equal(t, 3, parts.Hour)
	assert.Equal(t, 30, parts.Minute)
}

func TestStoreLocalToUTC_FallBackPrefersEarlierOffset(t *testing.T) {
	// 2025-11-02 02:00 EDT -> 01:00 EST, 01:30 встречается дважды
	got, err := StoreLocalToUTC("2025-11-02T01:30:00", newYork)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC), got)

	name, _ := got.In(mustLoad(t, newYork)).Zone()
	assert.Equal(t, "EDT", name)
}

func TestStoreLocalToUTC_Errors(t *testing.T) {
	_, err := StoreLocalToUTC("2025-01-13 09:00", newYork)
	assert.ErrorIs(t, err, ErrInvalidLocalDateTime)

	_, err = StoreLocalToUTC("2025-01-13T09:00:00", "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)

	_, err = StoreLocalToUTC("2025-01-13T09:00:00", "")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestToStoreLocal(t *testing.T) {
	parts, err := ToStoreLocal(time.Date(2025, 1, 13, 3, 15, 0, 0, time.UTC), newYork)
	require.NoError(t, err)

	assert.Equal(t, LocalParts{
		Year:    2025,
		Month:   time.January,
		Day:     12,
		Hour:    22,
		Minute:  15,
		Weekday: time.Sunday,
	}, parts)
	assert.True(t, parts.SameDate(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 22*60+15, parts.MinuteOfDay())
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), parts.Date())
}

func TestRoundTripAcrossTransitions(t *testing.T) {
	loc := mustLoad(t, newYork)
	days := []time.Time{
		time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
	}

	for _, day := range days {
		for minute := 0; minute < 24*60; minute += 15 {
			instant := LocalDateTimeToUTC(day, minute, loc)
			parts := ToLocalParts(instant, loc)

			// В разрыв попадает только 02:00-02:59 весеннего перевода
			if day.Month() == time.March && minute >= 120 && minute < 180 {
				assert.Equal(t, minute+60, parts.MinuteOfDay(), "gap minute %d", minute)
				continue
			}
			assert.Equal(t, minute, parts.MinuteOfDay(), "day %s minute %d", day.Format("2006-01-02"), minute)
			assert.True(t, parts.SameDate(day))
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc := mustLoad(t, newYork)

	start, end := DayBounds(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, 3, 9, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestAbbr(t *testing.T) {
	assert.Equal(t, "EST", Abbr(newYork, time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "EDT", Abbr(newYork, time.Date(2025, 7, 13, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Abbr("not/a/zone", time.Now()))
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadLocation(name)
	require.NoError(t, err)
	return loc
}
