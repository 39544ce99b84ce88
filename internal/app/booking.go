package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrSlotUnavailable is the user-facing conflict: the payload was valid but
// the requested slot is taken or in the past by the time the booking lands.
var ErrSlotUnavailable = errors.New("selected time slot is no longer available, please choose another time")

// BookingRequest carries the validated booking submission.
type BookingRequest struct {
	Name                string
	Email               string
	BusinessDescription string
	MeetingTime         time.Time
}

// SideEffect is the tagged outcome of a best-effort step: it either ran, or
// it degraded with a reason. Degradation never aborts the booking.
type SideEffect struct {
	OK     bool
	Reason string
}

func effectOK() SideEffect { return SideEffect{OK: true} }

func effectDegraded(reason string) SideEffect { return SideEffect{Reason: reason} }

// BookingResult is what a successful transaction hands back, including the
// fate of each best-effort step.
type BookingResult struct {
	Booking      *Booking
	MeetLink     string
	CalendarSync SideEffect
	Notification SideEffect
}

// BookMeeting runs the booking transaction.
//
// The availability re-check and the insert are required steps; everything
// touching Google is best-effort. The re-check closes most of the window
// between the client fetching availability and submitting, and the unique
// constraint on meeting_time (surfaced as ErrSlotTaken) closes the rest.
func (a *App) BookMeeting(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	start := req.MeetingTime
	end := start.Add(MeetingDuration)

	// Re-check: the requested start must match a currently available slot.
	slots := a.AvailableSlots(ctx, start)
	key := start.In(a.Cfg.Location).Format("15:04")
	var matched *Slot
	for i := range slots {
		if slots[i].Time == key {
			matched = &slots[i]
			break
		}
	}
	if matched == nil || !matched.Available {
		return nil, ErrSlotUnavailable
	}

	booking := &Booking{
		Name:                req.Name,
		Email:               req.Email,
		BusinessDescription: req.BusinessDescription,
		MeetingTime:         start,
		MeetingEndTime:      end,
	}

	result := &BookingResult{
		CalendarSync: effectDegraded("calendar integration not configured"),
		Notification: effectDegraded("notification channel not configured"),
	}

	var eventID, meetLink string
	if a.Calendar != nil {
		var err error
		eventID, meetLink, err = a.Calendar.CreateMeetingEvent(ctx, booking)
		if err != nil {
			a.Log.Error("calendar event creation failed, recording booking without event",
				zap.Error(err), zap.Time("meeting_time", start))
			result.CalendarSync = effectDegraded(err.Error())
			eventID, meetLink = "", ""
		} else {
			result.CalendarSync = effectOK()
		}
	}

	if err := a.Store.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	if eventID != "" {
		if err := a.Store.AttachEvent(ctx, booking.ID, eventID, meetLink); err != nil {
			a.Log.Error("attaching event to booking failed",
				zap.Error(err), zap.Int("booking_id", booking.ID))
			result.CalendarSync = effectDegraded(err.Error())
		} else {
			booking.GoogleEventID = eventID
			booking.GoogleMeetLink = meetLink
		}
	}

	if a.Mailer != nil {
		if err := a.Mailer.SendBookingNotification(ctx, booking, meetLink); err != nil {
			a.Log.Error("booking notification failed",
				zap.Error(err), zap.Int("booking_id", booking.ID))
			result.Notification = effectDegraded(err.Error())
		} else {
			result.Notification = effectOK()
		}
	}

	result.Booking = booking
	result.MeetLink = meetLink
	return result, nil
}
