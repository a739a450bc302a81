package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается, если строка не соответствует формату YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date string format")

// DateString календарная дата без времени в формате YYYY-MM-DD
// Строковое представление сравнимо лексикографически
type DateString string

// NewDateString создает DateString из time.Time (время отбрасывается)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateLayout))
}

// NewDateStringFromString парсит и валидирует строку даты
func NewDateStringFromString(s string) (DateString, error) {
	d := DateString(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d DateString) String() string {
	return string(d)
}

// IsZero возвращает true, если дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return nil
}

// Time возвращает дату как time.Time в UTC
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return t, nil
}

// IsBefore сравнивает две валидные даты
func (d DateString) IsBefore(other DateString) bool {
	return d < other
}

// Scan реализует sql.Scanner (колонка DATE приходит из lib/pq как time.Time)
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateString(v)
	case string:
		parsed, err := parseLoose(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := parseLoose(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case nil:
		*d = ""
	default:
		return fmt.Errorf("types: cannot scan %T into DateString", src)
	}
	return nil
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}

// parseLoose принимает как "2006-01-02", так и полный RFC3339 timestamp
func parseLoose(s string) (DateString, error) {
	if len(s) >= len(DateLayout) {
		if d, err := NewDateStringFromString(s[:len(DateLayout)]); err == nil {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
}
