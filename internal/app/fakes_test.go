package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeStore struct {
	bookings  []Booking
	nextID    int
	insertErr error
	listErr   error
	attachErr error
}

func (s *fakeStore) InsertBooking(_ context.Context, b *Booking) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, existing := range s.bookings {
		if existing.MeetingTime.Equal(b.MeetingTime) {
			return ErrSlotTaken
		}
	}
	s.nextID++
	b.ID = s.nextID
	b.Status = "scheduled"
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeStore) AttachEvent(_ context.Context, id int, eventID, meetLink string) error {
	if s.attachErr != nil {
		return s.attachErr
	}
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].GoogleEventID = eventID
			s.bookings[i].GoogleMeetLink = meetLink
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *fakeStore) GetBookingByID(_ context.Context, id int) (*Booking, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeStore) ListBookings(context.Context) ([]Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *fakeStore) ListBookingsInRange(_ context.Context, from, to time.Time) ([]Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Booking
	for _, b := range s.bookings {
		if !b.MeetingTime.Before(from) && !b.MeetingTime.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCalendar struct {
	busy      []BusyPeriod
	freeErr   error
	createErr error
	eventID   string
	meetLink  string
	created   int
}

func (c *fakeCalendar) FreeBusy(context.Context, time.Time, time.Time) ([]BusyPeriod, error) {
	if c.freeErr != nil {
		return nil, c.freeErr
	}
	return c.busy, nil
}

func (c *fakeCalendar) CreateMeetingEvent(context.Context, *Booking) (string, string, error) {
	c.created++
	if c.createErr != nil {
		return "", "", c.createErr
	}
	return c.eventID, c.meetLink, nil
}

type fakeNotifier struct {
	err  error
	sent int
}

func (n *fakeNotifier) SendBookingNotification(context.Context, *Booking, string) error {
	n.sent++
	return n.err
}

func testConfig() *Config {
	return &Config{
		Env:              "test",
		Timezone:         "UTC",
		Location:         time.UTC,
		WorkdayStartHour: 9,
		WorkdayEndHour:   18,
	}
}

func newTestApp(store BookingStore, cal CalendarAPI, mailer Notifier, now time.Time) *App {
	a := New(testConfig(), zap.NewNop(), store, cal, mailer)
	a.Now = func() time.Time { return now }
	return a
}
