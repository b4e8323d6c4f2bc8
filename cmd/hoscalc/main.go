package main

import (
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// hoscalc runs the schedule engine from the command line.
func main() {
	hours := flag.Float64("hours", 0, "total driving hours of the trip")
	miles := flag.Float64("miles", 0, "total trip distance in miles")
	cycle := flag.Float64("cycle", 0, "hours already used in the 70-hour cycle")
	fuel := flag.Bool("fuel", false, "insert the single fuel stop")
	asJSON := flag.Bool("json", false, "print the raw result as JSON")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if *hours < 0 || *miles < 0 {
		fmt.Fprintln(os.Stderr, "hours and miles must not be negative")
		os.Exit(2)
	}
	if *noColor {
		color.NoColor = true
	}

	res := hos.NewDefaultEngine().SimulateDetailed(hos.Input{
		TotalTripHours:        *hours,
		TotalDistanceMiles:    *miles,
		CurrentCycleUsedHours: *cycle,
		FuelStops:             *fuel,
	})

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	render(os.Stdout, res)
}

func statusColor(s domain.DutyStatus) *color.Color {
	switch s {
	case domain.DutyDriving:
		return color.New(color.FgGreen)
	case domain.DutyOnDuty:
		return color.New(color.FgYellow)
	case domain.DutySleeperBerth:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgHiBlack)
	}
}

// render prints one block per day followed by the trip totals.
func render(w io.Writer, res hos.Result) {
	bold := color.New(color.Bold)

	for _, day := range res.Days {
		bold.Fprintf(w, "Day %d\n", day.Day)
		for _, a := range day.Activities {
			fmt.Fprintf(w, "  %5s-%5s  %s %6.2fh", clock(a.Start), clock(a.End),
				statusColor(a.Type).Sprintf("%-13s", a.Type), a.Duration)
			if a.Reason != "" {
				fmt.Fprintf(w, "  %s", a.Reason)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  driving %.2f  on-duty %.2f  off-duty %.2f  sleeper %.2f  miles %.2f\n\n",
			day.DrivingHours, day.OnDutyHours, day.OffDutyHours, day.SleeperHours, day.MilesDriven)
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "days %d  regulated hours %.2f  miles %.2f  avg speed %.2f mph\n",
		len(res.Days), hos.TotalRegulatedHours(res.Days), hos.TotalMiles(res.Days), res.AverageSpeedMPH)
	fmt.Fprintf(w, "remaining trip %.2fh  remaining cycle %.2fh\n", res.RemainingTripHours, res.RemainingCycleHours)
	if res.Truncated {
		color.New(color.FgRed).Fprintln(w, "schedule truncated at the day limit")
	}
}

// clock formats hours since midnight as HH:MM.
func clock(h float64) string {
	mins := int(h*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
