package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `mapstructure:"GOOGLE_REFRESH_TOKEN"`
	OwnerEmail         string `mapstructure:"GOOGLE_OWNER_EMAIL"`
	CalendarIDs        string `mapstructure:"CALENDAR_IDS"`

	Timezone         string `mapstructure:"TIMEZONE"`
	WorkdayStartHour int    `mapstructure:"WORKDAY_START_HOUR"`
	WorkdayEndHour   int    `mapstructure:"WORKDAY_END_HOUR"`

	StaticTokens string `mapstructure:"STATIC_TOKENS"`
	JWTSecret    string `mapstructure:"JWT_HMAC_SECRET"`

	// Location resolved from Timezone at load time.
	Location *time.Location `mapstructure:"-"`
}

// GoogleConfigured reports whether the OAuth credentials needed for the
// Calendar and Gmail integrations are present. When false both integrations
// degrade: availability uses local bookings only and bookings are recorded
// without an event or notification.
func (c *Config) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRefreshToken != ""
}

// CalendarIDList splits the comma-separated free/busy calendar list, falling
// back to the owner calendar.
func (c *Config) CalendarIDList() []string {
	var ids []string
	for _, id := range strings.Split(c.CalendarIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 && c.OwnerEmail != "" {
		ids = []string{c.OwnerEmail}
	}
	return ids
}

// LoadConfig reads configuration from config.yaml and the environment.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_OWNER_EMAIL", "")
	viper.SetDefault("CALENDAR_IDS", "")
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("WORKDAY_START_HOUR", 9)
	viper.SetDefault("WORKDAY_END_HOUR", 18)
	viper.SetDefault("STATIC_TOKENS", "")
	viper.SetDefault("JWT_HMAC_SECRET", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.WorkdayEndHour <= cfg.WorkdayStartHour {
		return nil, fmt.Errorf("WORKDAY_END_HOUR (%d) must be after WORKDAY_START_HOUR (%d)",
			cfg.WorkdayEndHour, cfg.WorkdayStartHour)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return &cfg, nil
}
