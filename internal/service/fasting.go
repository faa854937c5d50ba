package service

import "time"

// FastingState describes where the clock sits relative to the daily eating
// window. During the fast, Hours/Minutes count down to the window reopening;
// during the eating window they count down to its close. Progress is elapsed
// fast time over the full 18h fast, clamped to [0,1].
type FastingState struct {
	IsFasting bool    `json:"is_fasting"`
	Hours     int     `json:"hours"`
	Minutes   int     `json:"minutes"`
	Progress  float64 `json:"progress"`
}

// CalculateFastingState is pure: it reads nothing but the supplied clock time.
// Callers re-evaluate at least once per minute and on returning to the
// foreground, so a suspended process self-corrects on the next tick.
func CalculateFastingState(now time.Time) FastingState {
	windowOpen := time.Date(now.Year(), now.Month(), now.Day(), eatingWindowStartHour, 0, 0, 0, now.Location())
	windowClose := time.Date(now.Year(), now.Month(), now.Day(), eatingWindowEndHour, 0, 0, 0, now.Location())

	if now.Hour() >= eatingWindowStartHour && now.Hour() < eatingWindowEndHour {
		remaining := windowClose.Sub(now)
		return FastingState{
			IsFasting: false,
			Hours:     int(remaining / time.Hour),
			Minutes:   int(remaining/time.Minute) % 60,
			Progress:  0,
		}
	}

	// Fast runs from yesterday's window close when it is still morning.
	fastStart := windowClose
	nextOpen := windowOpen.AddDate(0, 0, 1)
	if now.Before(windowOpen) {
		fastStart = windowClose.AddDate(0, 0, -1)
		nextOpen = windowOpen
	}

	remaining := nextOpen.Sub(now)
	elapsed := now.Sub(fastStart)
	fastLength := nextOpen.Sub(fastStart)
	progress := float64(elapsed) / float64(fastLength)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return FastingState{
		IsFasting: true,
		Hours:     int(remaining / time.Hour),
		Minutes:   int(remaining/time.Minute) % 60,
		Progress:  progress,
	}
}
