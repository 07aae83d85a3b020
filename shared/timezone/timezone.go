package timezone

import (
	"icpac/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "Africa/Nairobi"

var (
	appLocation *time.Location
	mu          sync.RWMutex
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Str("timezone", defaultTimezone).Msg("No timezone configured, using default")
		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Africa/Nairobi', 'UTC'")
		SetLocation(time.UTC)

		return
	}

	SetLocation(loc)
	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// SetLocation overrides the application timezone.
func SetLocation(loc *time.Location) {
	mu.Lock()
	defer mu.Unlock()

	appLocation = loc
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	mu.RLock()
	defer mu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns the current calendar date in the application timezone as midnight UTC,
// the representation used for booking dates.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf keeps only the calendar date of t (as seen in t's own location).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
