// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Current time and date in the app timezone:
//     now := timezone.Now()
//     today := timezone.Today() // calendar date as midnight UTC
//
//  2. Formatting and parsing:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//     t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// The timezone is configured via the APP_TIMEZONE environment variable and defaults to
// Africa/Nairobi. Use standard IANA timezone database names.
package timezone
