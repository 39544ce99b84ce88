package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSlotTaken is returned by InsertBooking when the unique constraint on
// meeting_time rejects a concurrent booking for the same slot.
var ErrSlotTaken = errors.New("slot already booked")

// BookingStore is the persistence port for bookings.
type BookingStore interface {
	InsertBooking(ctx context.Context, b *Booking) error
	AttachEvent(ctx context.Context, id int, eventID, meetLink string) error
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsInRange(ctx context.Context, from, to time.Time) ([]Booking, error)
}

// PGStore implements BookingStore on a pgx pool.
type PGStore struct {
	DB *pgxpool.Pool
}

const bookingColumns = `id, name, email, business_description, meeting_time, meeting_end_time,
	COALESCE(google_event_id, ''), COALESCE(google_meet_link, ''), status, created_at`

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(&b.ID, &b.Name, &b.Email, &b.BusinessDescription,
		&b.MeetingTime, &b.MeetingEndTime, &b.GoogleEventID, &b.GoogleMeetLink,
		&b.Status, &b.CreatedAt)
}

func (s *PGStore) InsertBooking(ctx context.Context, b *Booking) error {
	q := `INSERT INTO bookings (name, email, business_description, meeting_time, meeting_end_time, status)
	      VALUES ($1,$2,$3,$4,$5,'scheduled')
	      RETURNING id, status, created_at`
	err := s.DB.QueryRow(ctx, q,
		b.Name, b.Email, b.BusinessDescription, b.MeetingTime.UTC(), b.MeetingEndTime.UTC(),
	).Scan(&b.ID, &b.Status, &b.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlotTaken
	}
	return err
}

func (s *PGStore) AttachEvent(ctx context.Context, id int, eventID, meetLink string) error {
	q := `UPDATE bookings SET google_event_id=$1, google_meet_link=$2 WHERE id=$3`
	tag, err := s.DB.Exec(ctx, q, eventID, meetLink, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PGStore) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	var b Booking
	if err := scanBooking(s.DB.QueryRow(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PGStore) ListBookings(ctx context.Context) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY meeting_time`
	rows, err := s.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBookingsInRange returns bookings whose meeting start falls inside
// [from, to], inclusive on both ends.
func (s *PGStore) ListBookingsInRange(ctx context.Context, from, to time.Time) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings
	      WHERE meeting_time >= $1 AND meeting_time <= $2
	      ORDER BY meeting_time`
	rows, err := s.DB.Query(ctx, q, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
