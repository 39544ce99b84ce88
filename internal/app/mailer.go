package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Notifier is the fire-and-forget notification port. Failures are the
// caller's to log and swallow.
type Notifier interface {
	SendBookingNotification(ctx context.Context, b *Booking, meetLink string) error
}

// GmailNotifier sends the owner a booking summary through the Gmail API,
// reusing the same refresh-token client as the calendar integration.
type GmailNotifier struct {
	svc        *gmail.Service
	ownerEmail string
	location   *time.Location
}

func NewGmailNotifier(ctx context.Context, cfg *Config) (*GmailNotifier, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(googleHTTPClient(ctx, cfg)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &GmailNotifier{svc: svc, ownerEmail: cfg.OwnerEmail, location: cfg.Location}, nil
}

func (n *GmailNotifier) SendBookingNotification(ctx context.Context, b *Booking, meetLink string) error {
	formattedTime := b.MeetingTime.In(n.location).Format("Monday, January 2, 2006 at 3:04 PM")

	var body strings.Builder
	body.WriteString("New Meeting Scheduled\n\n")
	fmt.Fprintf(&body, "Name: %s\n", b.Name)
	fmt.Fprintf(&body, "Email: %s\n", b.Email)
	fmt.Fprintf(&body, "Time: %s\n\n", formattedTime)
	fmt.Fprintf(&body, "Business Description:\n%s\n", b.BusinessDescription)
	if meetLink != "" {
		fmt.Fprintf(&body, "\nJoin Google Meet: %s\n", meetLink)
	}

	headers := []string{
		fmt.Sprintf("From: %s", n.ownerEmail),
		fmt.Sprintf("To: %s", n.ownerEmail),
		fmt.Sprintf("Subject: New Discovery Call Scheduled: %s", b.Name),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body.String(),
	}
	raw := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(headers, "\r\n")))

	_, err := n.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send notification mail: %w", err)
	}
	return nil
}
