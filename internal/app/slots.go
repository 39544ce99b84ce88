package app

import (
	"context"
	"time"
)

const (
	// MeetingDuration is the fixed length of every bookable meeting.
	MeetingDuration = 30 * time.Minute
	// SlotStep is the cadence at which candidate slots are generated.
	SlotStep = 30 * time.Minute
	// BufferBefore is blocked ahead of a candidate slot when checking
	// conflicts; BufferAfter behind it. Asymmetric on purpose: prep time
	// before a commitment matters more than wind-down after it.
	BufferBefore = 45 * time.Minute
	BufferAfter  = 15 * time.Minute
)

// BuildSlots enumerates candidate slots for the working day starting at
// dayStart (midnight in the reference timezone) and resolves each one
// against the busy periods and the clock.
//
// A slot is unavailable when its buffered window [start-BufferBefore,
// end+BufferAfter) overlaps any busy period under half-open semantics, or
// when its start is at or before now. The full ordered list is returned;
// callers render unavailable slots disabled rather than hiding them.
func BuildSlots(dayStart time.Time, startHour, endHour int, busy []BusyPeriod, now time.Time) []Slot {
	workStart := dayStart.Add(time.Duration(startHour) * time.Hour)
	workEnd := dayStart.Add(time.Duration(endHour) * time.Hour)

	var slots []Slot
	for t := workStart; t.Before(workEnd); t = t.Add(SlotStep) {
		slotEnd := t.Add(MeetingDuration)
		if slotEnd.After(workEnd) {
			break
		}

		bufferStart := t.Add(-BufferBefore)
		bufferEnd := slotEnd.Add(BufferAfter)

		available := true
		for _, b := range busy {
			if bufferStart.Before(b.End) && bufferEnd.After(b.Start) {
				available = false
				break
			}
		}
		if !t.After(now) {
			available = false
		}

		slots = append(slots, Slot{
			Time:        t.Format("15:04"),
			DisplayTime: t.Format("3:04 PM"),
			Available:   available,
			Start:       t,
		})
	}
	return slots
}

// AvailableSlots computes the full slot list for the calendar day containing
// date, interpreted in the configured reference timezone. Degraded busy
// sources reduce to fewer exclusions, never to an error; the booking path
// re-validates before any write.
func (a *App) AvailableSlots(ctx context.Context, date time.Time) []Slot {
	local := date.In(a.Cfg.Location)
	year, month, day := local.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, a.Cfg.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	busy := a.busyPeriods(ctx, dayStart, dayEnd)
	return BuildSlots(dayStart, a.Cfg.WorkdayStartHour, a.Cfg.WorkdayEndHour, busy, a.Now())
}
