package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Weekly fires once a week at Day Hour:Minute in Location.
type Weekly struct {
	Day      time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekly parses "thu 08:00" style specs.
func ParseWeekly(spec string, loc *time.Location) (Weekly, error) {
	fields := strings.Fields(strings.ToLower(spec))
	if len(fields) != 2 {
		return Weekly{}, fmt.Errorf("weekly schedule %q: want \"<weekday> <HH:MM>\"", spec)
	}
	day, ok := weekdays[fields[0]]
	if !ok {
		return Weekly{}, fmt.Errorf("weekly schedule %q: unknown weekday %q", spec, fields[0])
	}
	t, err := time.Parse("15:04", fields[1])
	if err != nil {
		return Weekly{}, fmt.Errorf("weekly schedule %q: bad time: %w", spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return Weekly{Day: day, Hour: t.Hour(), Minute: t.Minute(), Location: loc}, nil
}

// Next returns the first firing time strictly after current.
func (w Weekly) Next(current time.Time) time.Time {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	now := current.In(loc)
	days := (int(w.Day) - int(now.Weekday()) + 7) % 7
	next := time.Date(now.Year(), now.Month(), now.Day()+days, w.Hour, w.Minute, 0, 0, loc)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+days+7, w.Hour, w.Minute, 0, 0, loc)
	}
	return next
}

func (w Weekly) String() string {
	return fmt.Sprintf("%s %02d:%02d", strings.ToLower(w.Day.String()[:3]), w.Hour, w.Minute)
}
