package app

import (
	"time"

	"go.uber.org/zap"
)

// App wires the booking core to its collaborators. Clients are constructed
// once at process start and injected; nothing here reaches for ambient
// globals.
type App struct {
	Cfg      *Config
	Log      *zap.Logger
	Store    BookingStore
	Calendar CalendarAPI // nil when Google credentials are absent
	Mailer   Notifier    // nil when Google credentials are absent
	Now      func() time.Time
}

func New(cfg *Config, log *zap.Logger, store BookingStore, cal CalendarAPI, mailer Notifier) *App {
	return &App{
		Cfg:      cfg,
		Log:      log,
		Store:    store,
		Calendar: cal,
		Mailer:   mailer,
		Now:      time.Now,
	}
}
