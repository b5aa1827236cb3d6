package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeString время суток в формате HH:MM (настенные часы, без даты и часового пояса)
// Значение "24:00" допускается только как конец суток (время закрытия)
type TimeString string

const (
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"

	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	// EndOfDay конец суток, используется как время закрытия "до полуночи"
	EndOfDay TimeString = "24:00"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" (или "HH:MM:SS", как её отдает PostgreSQL TIME)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == string(EndOfDay) || s == "24:00:00" {
		return EndOfDay, nil
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(timeLayoutSeconds, s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	return NewTimeString(t), nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	if t == EndOfDay {
		return MinutesPerDay, nil
	}

	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsValid проверяет формат значения
func (t TimeString) IsValid() bool {
	_, err := t.Minutes()
	return err == nil
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}
