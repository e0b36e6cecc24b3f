package timezone

import (
	"shareit/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
	loadOnce    sync.Once
)

func location() *time.Location {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC as default")

			appLocation = time.UTC

			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().
				Err(err).
				Str("timezone", name).
				Msg("Failed to load timezone, falling back to UTC")

			appLocation = time.UTC

			return
		}

		appLocation = loc
		log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
	})

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(location())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	return location()
}

// Parse parses a time string in the application timezone. Layouts carrying an
// explicit offset keep it.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
