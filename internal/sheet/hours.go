package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ComputeHours derives the worked hours between two HH:MM clock times as a
// 2-decimal string. A time-out earlier than time-in means the shift wrapped
// past midnight, so a day is added before subtracting. lunch is deducted from
// the elapsed time, floored at zero. If either time is missing or
// unparseable the result is "0.00".
func ComputeHours(timeIn, timeOut string, lunch time.Duration) string {
	in, okIn := parseClock(timeIn)
	out, okOut := parseClock(timeOut)
	if !okIn || !okOut {
		return "0.00"
	}

	minutes := out - in
	if minutes < 0 {
		minutes += 24 * 60
	}
	minutes -= int(lunch.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%.2f", float64(minutes)/60)
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}
