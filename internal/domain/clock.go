package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date. Delivery windows and depot
// hours are local clock times; the solver works on their minutes-since-midnight
// projection.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Minutes returns the time as fractional minutes since local midnight.
func (t TimeOfDay) Minutes() float64 {
	return float64(t.Hour)*60 + float64(t.Minute) + float64(t.Second)/60
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay

	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return t, fmt.Errorf("parse time of day %q: want HH:MM or HH:MM:SS", s)
	}

	read := func(p string, max int, what string) (int, error) {
		var v int
		if _, err := fmt.Sscanf(p, "%d", &v); err != nil {
			return 0, fmt.Errorf("parse time of day %q: bad %s: %w", s, what, err)
		}
		if v < 0 || v > max {
			return 0, fmt.Errorf("parse time of day %q: %s out of range", s, what)
		}
		return v, nil
	}

	var err error
	if t.Hour, err = read(parts[0], 23, "hour"); err != nil {
		return TimeOfDay{}, err
	}
	if t.Minute, err = read(parts[1], 59, "minute"); err != nil {
		return TimeOfDay{}, err
	}
	if len(parts) == 3 {
		if t.Second, err = read(parts[2], 59, "second"); err != nil {
			return TimeOfDay{}, err
		}
	}
	return t, nil
}

// MinutesToHHMM renders fractional minutes since midnight as "HH:MM" using
// integer-minute truncation, the format route ETAs are displayed in.
func MinutesToHHMM(min float64) string {
	total := int(min)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time of day: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the time as "HH:MM:SS"; Postgres coerces it to TIME.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan accepts TIME columns surfaced as string, []byte or time.Time depending
// on the driver path.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	case nil:
		*t = TimeOfDay{}
		return nil
	default:
		return fmt.Errorf("time of day: cannot scan %T", src)
	}
}
