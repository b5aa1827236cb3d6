// Package tzconv переводит моменты времени между UTC и настенным временем салона.
//
// Вся арифметика смещений в сервисе выполняется только здесь. Остальной код оперирует
// либо моментами (time.Time), либо минутами от начала локальных суток.
package tzconv

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// База часовых поясов встраивается в бинарник, чтобы не зависеть от /usr/share/zoneinfo в контейнере
	_ "time/tzdata"
)

// LocalDateTimeLayout формат локальной даты-времени "YYYY-MM-DDTHH:MM:SS"
const LocalDateTimeLayout = "2006-01-02T15:04:05"

const secondsPerDay = 24 * 60 * 60

var (
	// ErrUnknownTimezone возвращается, если часовой пояс пуст или отсутствует в базе IANA
	ErrUnknownTimezone = errors.New("tzconv: unknown timezone")

	// ErrInvalidLocalDateTime возвращается при некорректной строке локального времени
	ErrInvalidLocalDateTime = errors.New("tzconv: invalid local date-time")
)

// LocalParts настенное время, которое видит наблюдатель в часовом поясе салона
type LocalParts struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// SameDate возвращает true, если дата совпадает с календарной датой date (используются только Y-M-D)
func (p LocalParts) SameDate(date time.Time) bool {
	y, m, d := date.Date()
	return p.Year == y && p.Month == m && p.Day == d
}

// Date возвращает локальную календарную дату как полночь UTC, в том виде, в каком даты ходят по сервису
func (p LocalParts) Date() time.Time {
	return time.Date(p.Year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
}

// MinuteOfDay возвращает количество минут от начала локальных суток
func (p LocalParts) MinuteOfDay() int {
	return p.Hour*60 + p.Minute
}

// LoadLocation загружает часовой пояс по имени IANA
func LoadLocation(timezone string) (*time.Location, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownTimezone, timezone, err)
	}
	return loc, nil
}

// ToStoreLocal раскладывает момент времени на локальные компоненты в часовом поясе timezone
func ToStoreLocal(instant time.Time, timezone string) (LocalParts, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return LocalParts{}, err
	}
	return ToLocalParts(instant, loc), nil
}

// ToLocalParts то же, что ToStoreLocal, но для уже загруженного часового пояса
func ToLocalParts(instant time.Time, loc *time.Location) LocalParts {
	local := instant.In(loc)
	return LocalParts{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Weekday: local.Weekday(),
	}
}

// StoreLocalToUTC переводит локальное время "YYYY-MM-DDTHH:MM:SS" в момент UTC
//
// Повторяющееся локальное время (перевод часов назад) разрешается в более раннее смещение,
// несуществующее время (перевод вперед) сдвигается вперед на длину разрыва.
func StoreLocalToUTC(local string, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	wall, err := time.ParseInLocation(LocalDateTimeLayout, strings.TrimSpace(local), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidLocalDateTime, local, err)
	}

	return resolveWall(wall, loc).UTC(), nil
}

// LocalDateTimeToUTC возвращает момент, соответствующий календарной дате date (используются только Y-M-D)
// и minuteOfDay минутам от начала локальных суток. minuteOfDay = 1440 означает полночь следующего дня.
func LocalDateTimeToUTC(date time.Time, minuteOfDay int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	wall := time.Date(y, m, d, 0, minuteOfDay, 0, 0, time.UTC)
	return resolveWall(wall, loc).UTC()
}

// DayBounds возвращает полуинтервал [начало, конец) локальных суток даты date в UTC
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	return LocalDateTimeToUTC(date, 0, loc), LocalDateTimeToUTC(date, 24*60, loc)
}

// Abbr возвращает короткое обозначение часового пояса на момент at (например, "EST")
// Для поясов без буквенного сокращения база IANA отдает числовое, например "+03"
func Abbr(timezone string, at time.Time) string {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return ""
	}
	name, _ := at.In(loc).Zone()
	return name
}

// resolveWall переводит настенное время (закодированное как UTC) в момент в часовом поясе loc
func resolveWall(wall time.Time, loc *time.Location) time.Time {
	naive := wall.Unix()

	// Смещения за сутки до и после покрывают любой переход, случающийся не чаще раза в сутки
	_, offsetBefore := time.Unix(naive-secondsPerDay, 0).In(loc).Zone()
	_, offsetAfter := time.Unix(naive+secondsPerDay, 0).In(loc).Zone()

	var (
		best  time.Time
		found bool
	)
	for _, offset := range []int{offsetBefore, offsetAfter} {
		candidate := time.Unix(naive-int64(offset), 0).In(loc)
		if !sameWall(candidate, wall) {
			continue
		}
		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}
	if found {
		return best
	}

	// Локального времени не существует: берем смещение до перехода, что сдвигает его вперед на длину разрыва
	return time.Unix(naive-int64(offsetBefore), 0).In(loc)
}

func sameWall(t time.Time, wall time.Time) bool {
	return t.Year() == wall.Year() &&
		t.Month() == wall.Month() &&
		t.Day() == wall.Day() &&
		t.Hour() == wall.Hour() &&
		t.Minute() == wall.Minute() &&
		t.Second() == wall.Second()
}
