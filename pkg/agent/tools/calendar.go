package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-recruiter-be/pkg/llm"
)

const CalendarToolName = "check_candidate_calendar"

const isoLayout = "2006-01-02T15:04:05"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	isoLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// slotTimes are the daily interview windows as [start, end) hour/minute pairs.
var slotTimes = [][4]int{
	{10, 0, 11, 0},
	{14, 0, 15, 0},
	{16, 30, 17, 0},
}

type Slot struct {
	From time.Time
	Till time.Time
}

func (s Slot) contains(t time.Time) bool {
	return !t.Before(s.From) && t.Before(s.Till)
}

// Calendar answers availability questions against today's fixed slots.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar builds the tool for loc. now defaults to time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

func (c *Calendar) Definition() llm.Tool {
	return llm.Tool{
		Name:        CalendarToolName,
		Description: "Check candidate availability at a given ISO datetime OR list all available slots.",
		Parameters: objectSchema(map[string]interface{}{
			"date_time": stringProp(`Optional ISO datetime string (e.g., "2025-02-10T15:00:00")`),
		}),
	}
}

func (c *Calendar) Call(_ context.Context, arguments string) (string, error) {
	var args struct {
		DateTime string `json:"date_time"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return c.Check(args.DateTime), nil
}

// Slots returns today's windows in the calendar's location.
func (c *Calendar) Slots() []Slot {
	y, m, d := c.now().In(c.loc).Date()
	slots := make([]Slot, 0, len(slotTimes))
	for _, st := range slotTimes {
		slots = append(slots, Slot{
			From: time.Date(y, m, d, st[0], st[1], 0, 0, c.loc),
			Till: time.Date(y, m, d, st[2], st[3], 0, 0, c.loc),
		})
	}
	return slots
}

// Check lists the slots when dateTime is empty, otherwise reports whether
// dateTime falls inside one of them.
func (c *Calendar) Check(dateTime string) string {
	slots := c.Slots()
	listing := formatSlots(slots)
	dateTime = strings.TrimSpace(dateTime)

	if dateTime == "" {
		return "Available interview slots:\n" + listing +
			"\n\nProvide a datetime to check availability (e.g., '2025-02-10T10:30:00')"
	}

	at, err := c.parse(dateTime)
	if err != nil {
		return fmt.Sprintf("Invalid datetime format: %s. Use ISO format: YYYY-MM-DDTHH:MM:SS", dateTime)
	}

	for _, s := range slots {
		if s.contains(at) {
			return fmt.Sprintf("Candidate IS available at %s\n\nOther available slots:\n%s", dateTime, listing)
		}
	}
	return fmt.Sprintf("Candidate is NOT available at %s\n\nAvailable slots:\n%s", dateTime, listing)
}

// parse reads ISO datetimes; values without an offset are in the calendar's location.
func (c *Calendar) parse(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	var lastErr error
	for _, layout := range acceptedLayouts[1:] {
		t, err := time.ParseInLocation(layout, value, c.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func formatSlots(slots []Slot) string {
	lines := make([]string, len(slots))
	for i, s := range slots {
		lines[i] = fmt.Sprintf("- %s to %s", s.From.Format(isoLayout), s.Till.Format(isoLayout))
	}
	return strings.Join(lines, "\n")
}
