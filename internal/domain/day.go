package domain

import "time"

const dayLayout = "2006-01-02"

// Day is a calendar date held as midnight UTC and serialized as "YYYY-MM-DD".
type Day struct{ time.Time }

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t}, nil
}

func (d Day) String() string {
	return d.Time.Format(dayLayout)
}

func (d Day) AddDays(n int) Day {
	return Day{d.Time.AddDate(0, 0, n)}
}

// StartOfWeek returns the Monday of d's week.
func (d Day) StartOfWeek() Day {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDays(1 - weekday)
}

// StartOfMonth returns the first day of the given month.
func StartOfMonth(year int, month time.Month) Day {
	return Day{time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+dayLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
