package app

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// busyPeriods unions the two sources of occupied time for one day: locally
// persisted bookings and the remote calendar free/busy feed. Both ranges are
// taken verbatim; buffers are applied at slot-check time, never baked in.
//
// Either source failing degrades to an empty contribution. Availability
// reads fail open because the booking transaction re-checks before
// committing; losing a source must not take the whole endpoint down.
func (a *App) busyPeriods(ctx context.Context, dayStart, dayEnd time.Time) []BusyPeriod {
	var periods []BusyPeriod

	bookings, err := a.Store.ListBookingsInRange(ctx, dayStart, dayEnd)
	if err != nil {
		a.Log.Warn("listing bookings for availability", zap.Error(err))
	}
	for _, b := range bookings {
		periods = append(periods, BusyPeriod{Start: b.MeetingTime, End: b.MeetingEndTime})
	}

	if a.Calendar != nil {
		remote, err := a.Calendar.FreeBusy(ctx, dayStart, dayEnd)
		if err != nil {
			a.Log.Warn("free/busy query failed, using local bookings only", zap.Error(err))
		} else {
			periods = append(periods, remote...)
		}
	}

	// Neither source guarantees order; the resolver's scan expects a list
	// sorted by start.
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
	return periods
}
