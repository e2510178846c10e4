package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig configures the calendar the engine operates in and where
// holidays come from.
type CalendarConfig struct {
	Timezone    string   `mapstructure:"timezone"`     // IANA name, "Local" or "UTC"
	WeekendDays []string `mapstructure:"weekend_days"` // day names, e.g. ["saturday", "sunday"]
	HolidayFile string   `mapstructure:"holiday_file"` // local holiday file (optional)
	HolidayURL  string   `mapstructure:"holiday_url"`  // year-calendar URL with {year} placeholder (optional)
	CacheTTL    string   `mapstructure:"cache_ttl"`    // TTL for fetched holiday data
}

// EngineConfig configures the business-day engine's safety bound.
type EngineConfig struct {
	MaxSkippedDays int `mapstructure:"max_skipped_days"`
}

// LogConfig configures logging output.
type LogConfig struct {
	File  string `mapstructure:"log_file"`
	Level string `mapstructure:"log_level"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load loads configuration from file. A missing config file is not an
// error; the defaults describe a plain Saturday/Sunday calendar with no
// holidays.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workcal")
		v.AddConfigPath("/etc/workcal")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}

	for _, name := range c.Calendar.WeekendDays {
		if _, ok := weekdayNames[strings.ToLower(name)]; !ok {
			return fmt.Errorf("calendar.weekend_days: unknown day name %q", name)
		}
	}

	if c.Calendar.HolidayURL != "" && !strings.Contains(c.Calendar.HolidayURL, "{year}") {
		return fmt.Errorf("calendar.holiday_url must contain a {year} placeholder")
	}

	if c.Engine.MaxSkippedDays < 0 {
		return fmt.Errorf("engine.max_skipped_days must not be negative")
	}

	return nil
}

// Location resolves the configured timezone. An empty or "Local" value maps
// to the system zone.
func (c *CalendarConfig) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}

// WeekendSet resolves the configured weekend day names. An empty list means
// the engine keeps its Saturday/Sunday default, signalled by a nil slice.
func (c *CalendarConfig) WeekendSet() ([]time.Weekday, error) {
	if len(c.WeekendDays) == 0 {
		return nil, nil
	}

	days := make([]time.Weekday, 0, len(c.WeekendDays))
	for _, name := range c.WeekendDays {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown day name %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

// GetCacheTTL returns the holiday cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
