package tools

import (
	"context"
	"testing"
	"time"

	"ai-recruiter-be/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCalendar() *Calendar {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, loc)
	return NewCalendar(loc, func() time.Time { return now })
}

func TestCalendar_Check(t *testing.T) {
	c := fixedCalendar()

	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{"slot start is inclusive", "2025-02-10T10:00:00", "Candidate IS available at 2025-02-10T10:00:00"},
		{"inside afternoon slot", "2025-02-10T14:30", "Candidate IS available"},
		{"slot end is exclusive", "2025-02-10T11:00:00", "Candidate is NOT available"},
		{"late slot", "2025-02-10 16:45:00", "Candidate IS available"},
		{"other day", "2025-02-11T10:30:00", "Candidate is NOT available"},
		{"offset converted", "2025-02-10T03:30:00Z", "Candidate IS available"},
		{"garbage", "next tuesday", "Invalid datetime format: next tuesday. Use ISO format: YYYY-MM-DDTHH:MM:SS"},
		{"no datetime lists slots", "", "Available interview slots:\n- 2025-02-10T10:00:00 to 2025-02-10T11:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, c.Check(tt.input), tt.prefix)
		})
	}
}

func TestCalendar_ListsAllSlots(t *testing.T) {
	out := fixedCalendar().Check("2025-02-10T10:15:00")

	assert.Contains(t, out, "- 2025-02-10T10:00:00 to 2025-02-10T11:00:00")
	assert.Contains(t, out, "- 2025-02-10T14:00:00 to 2025-02-10T15:00:00")
	assert.Contains(t, out, "- 2025-02-10T16:30:00 to 2025-02-10T17:00:00")
}

func TestCalendar_SlotsFollowClock(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewCalendar(time.UTC, func() time.Time { return day })
	slots := c.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), slots[0].From)

	day = day.Add(24 * time.Hour)
	assert.Equal(t, 2, c.Slots()[0].From.Day())
}

func TestCalendar_Call(t *testing.T) {
	c := fixedCalendar()

	out, err := c.Call(context.Background(), `{"date_time":"2025-02-10T14:00:00"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "IS available")

	out, err = c.Call(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Available interview slots")

	_, err = c.Call(context.Background(), "{not json")
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	assert.Equal(t, CalendarToolName, c.Definition().Name)
}
