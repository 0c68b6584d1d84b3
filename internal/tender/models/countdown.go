package models

import (
	"fmt"
	"time"
)

// Countdown is the human-readable time remaining until a deadline, broken
// into whole days, hours within the day, and minutes within the hour.
// Expired marks deadlines at or before the reference instant.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Expired bool `json:"expired"`
}

// Remaining computes the countdown from now to deadline. Each unit is
// floored after subtracting the larger units, matching what the listing
// screens render. Pure and idempotent; callers re-invoke it on a display
// cadence (the original refreshed once per minute) rather than caching.
func Remaining(now, deadline time.Time) Countdown {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return Countdown{Expired: true}
	}
	return Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int((diff % (24 * time.Hour)) / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}

// String renders the countdown the way the listing cards show it.
func (c Countdown) String() string {
	if c.Expired {
		return "Finalizado"
	}
	return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
}
