package forecast

import "time"

// CurrentHourTolerance is the window used to match the continuous wall
// clock against hourly sample timestamps.
const CurrentHourTolerance = 30 * time.Minute

// NextNHours returns up to n strictly increasing indices into times,
// starting at the first sample that is not older than now by more than the
// tolerance window. If every sample lies in the past, the last sample is
// returned so the display degrades to the closest preceding hour near the
// end of the fetched window. Never wraps, never pads.
func NextNHours(times []time.Time, now time.Time, n int) []int {
	if len(times) == 0 || n <= 0 {
		return nil
	}

	cutoff := now.Add(-CurrentHourTolerance)
	start := -1
	for i, t := range times {
		if !t.Before(cutoff) {
			start = i
			break
		}
	}
	if start == -1 {
		start = len(times) - 1
	}

	end := start + n
	if end > len(times) {
		end = len(times)
	}

	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

// IsCurrentHour reports whether an hourly sample timestamp matches now
// within the tolerance window. Used to highlight the current hour.
func IsCurrentHour(sample, now time.Time) bool {
	diff := now.Sub(sample)
	if diff < 0 {
		diff = -diff
	}
	return diff <= CurrentHourTolerance
}
