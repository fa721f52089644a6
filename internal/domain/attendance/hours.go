package attendance

import "time"

// ComputeHours returns the worked hours between clockIn and clockOut minus the break.
// The result is floored at zero, which also absorbs a clockOut earlier than clockIn.
func ComputeHours(clockIn, clockOut time.Time, breakMinutes int) float64 {
	hours := clockOut.Sub(clockIn).Hours() - float64(breakMinutes)/60
	if hours < 0 {
		return 0
	}
	return hours
}
