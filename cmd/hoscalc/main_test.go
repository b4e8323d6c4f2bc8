package main

import (
	"bytes"
	"eld-trip-service/internal/hos"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00", clock(0))
	assert.Equal(t, "07:30", clock(7.5))
	assert.Equal(t, "17:45", clock(17.75))
	assert.Equal(t, "24:00", clock(24))
}

func TestRender(t *testing.T) {
	color.NoColor = true

	res := hos.NewDefaultEngine().SimulateDetailed(hos.Input{TotalTripHours: 2, TotalDistanceMiles: 110})

	var buf bytes.Buffer
	render(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Day 1\n")
	assert.Contains(t, out, "07:30-09:00  DRIVING")
	assert.Contains(t, out, "Post-arrival On Duty")
	assert.Contains(t, out, "days 1  regulated hours 13.25  miles 110.00")
	assert.NotContains(t, out, "truncated")
}
