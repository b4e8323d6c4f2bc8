package hos

import "math"

// Remaining trip hours at or below epsilon count as arrived.
const epsilon = 1e-9

// Ties round to even, so 65.625 miles is reported as 65.62.
func round4(v float64) float64 { return math.RoundToEven(v*1e4) / 1e4 }

func round2(v float64) float64 { return math.RoundToEven(v*1e2) / 1e2 }

// duration is end-start clamped at zero and rounded to four decimals.
func duration(start, end float64) float64 {
	return round4(math.Max(0, end-start))
}
