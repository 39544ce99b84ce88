package app

import "time"

// Booking is one confirmed meeting, persisted in Postgres.
// MeetingEndTime is always MeetingTime + MeetingDuration at creation and is
// only ever touched again to attach the remote event linkage.
type Booking struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	BusinessDescription string    `json:"businessDescription"`
	MeetingTime         time.Time `json:"meetingTime"`
	MeetingEndTime      time.Time `json:"meetingEndTime"`
	GoogleEventID       string    `json:"googleEventId,omitempty"`
	GoogleMeetLink      string    `json:"googleMeetLink,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt,omitempty"`
}

// BusyPeriod is a half-open [Start, End) interval during which no meeting
// may be offered. Recomputed on every availability request, never cached.
type BusyPeriod struct {
	Start time.Time
	End   time.Time
}

// Slot is one candidate meeting position in a day. Start is kept for
// server-side matching and not serialized; clients key off Time ("HH:mm").
type Slot struct {
	Time        string    `json:"time"`
	DisplayTime string    `json:"displayTime"`
	Available   bool      `json:"available"`
	Start       time.Time `json:"-"`
}
