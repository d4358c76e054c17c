// Package format provides the time display conventions shared by the live
// status board and the timing report.
package format

import (
	"fmt"
	"math"
	"time"
)

// Clock renders a duration as "m:ss", the playback-position style used for
// elapsed time. Negative durations render as "0:00".
func Clock(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Duration renders a duration for summary rows: "1m 5s" at or above one
// minute, "3.2s" below it.
func Duration(d time.Duration) string {
	secs := d.Seconds()
	if secs >= 60 {
		return fmt.Sprintf("%dm %ds", int(secs/60), int(math.Round(math.Mod(secs, 60))))
	}
	return fmt.Sprintf("%.1fs", secs)
}

// Queue renders a queue-time figure. Values below one second collapse to
// "< 1s"; everything else follows Duration.
func Queue(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}
	return Duration(d)
}

// ETALabel renders an estimated-time-remaining annotation in whole minutes,
// e.g. "ETA ~2 min" for 120 seconds. It returns an empty string when the
// estimate is NaN, zero, or negative, meaning no label should be shown.
func ETALabel(etaSeconds float64) string {
	if math.IsNaN(etaSeconds) || etaSeconds <= 0 {
		return ""
	}
	return fmt.Sprintf("ETA ~%d min", int(math.Round(etaSeconds/60)))
}
