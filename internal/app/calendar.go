package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// CalendarAPI is the remote calendar port: free/busy lookup for the
// availability path and event creation for the booking path.
type CalendarAPI interface {
	FreeBusy(ctx context.Context, from, to time.Time) ([]BusyPeriod, error)
	CreateMeetingEvent(ctx context.Context, b *Booking) (eventID, meetLink string, err error)
}

// GoogleCalendar implements CalendarAPI against the Google Calendar v3 API,
// authenticated with an offline refresh token.
type GoogleCalendar struct {
	svc         *calendar.Service
	calendarIDs []string
	ownerEmail  string
	timezone    string
}

// googleHTTPClient builds an oauth2-refreshing HTTP client from the stored
// refresh token. Constructed once at startup, shared by the Calendar and
// Gmail services.
func googleHTTPClient(ctx context.Context, cfg *Config) *http.Client {
	oc := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			calendar.CalendarScope,
			gmail.GmailSendScope,
		},
	}
	return oc.Client(ctx, &oauth2.Token{RefreshToken: cfg.GoogleRefreshToken})
}

func NewGoogleCalendar(ctx context.Context, cfg *Config) (*GoogleCalendar, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(googleHTTPClient(ctx, cfg)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &GoogleCalendar{
		svc:         svc,
		calendarIDs: cfg.CalendarIDList(),
		ownerEmail:  cfg.OwnerEmail,
		timezone:    cfg.Timezone,
	}, nil
}

// FreeBusy queries occupied ranges across the configured calendar list for
// [from, to). Ranges come back verbatim; entries that fail to parse are
// skipped rather than failing the whole set.
func (g *GoogleCalendar) FreeBusy(ctx context.Context, from, to time.Time) ([]BusyPeriod, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
	}
	for _, id := range g.calendarIDs {
		req.Items = append(req.Items, &calendar.FreeBusyRequestItem{Id: id})
	}

	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var periods []BusyPeriod
	for _, id := range g.calendarIDs {
		cal, ok := resp.Calendars[id]
		if !ok {
			continue
		}
		for _, p := range cal.Busy {
			start, err := time.Parse(time.RFC3339, p.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, p.End)
			if err != nil {
				continue
			}
			periods = append(periods, BusyPeriod{Start: start, End: end})
		}
	}
	return periods, nil
}

// CreateMeetingEvent inserts the discovery-call event on the owner calendar
// with a Meet conference request and attendee invitations.
func (g *GoogleCalendar) CreateMeetingEvent(ctx context.Context, b *Booking) (string, string, error) {
	description := fmt.Sprintf("Discovery call with %s\n\nBusiness Description/Goals:\n%s\n\nContact: %s",
		b.Name, b.BusinessDescription, b.Email)

	event := &calendar.Event{
		Summary:     "Discovery Call - " + b.Name,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: b.MeetingTime.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: b.MeetingEndTime.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: g.ownerEmail},
			{Email: b.Email},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 60},
				{Method: "popup", Minutes: 15},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.svc.Events.Insert(g.ownerEmail, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("insert event: %w", err)
	}

	meetLink := created.HangoutLink
	if meetLink == "" && created.ConferenceData != nil && len(created.ConferenceData.EntryPoints) > 0 {
		meetLink = created.ConferenceData.EntryPoints[0].Uri
	}
	return created.Id, meetLink, nil
}
