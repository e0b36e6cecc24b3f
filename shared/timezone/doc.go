// Package timezone resolves the application timezone from APP_TIMEZONE and
// exposes helpers that render and parse booking instants in it.
//
//	now := timezone.Now()
//	formatted := timezone.Format(booking.StartTime, constant.DateFormat)
//
// The location is loaded lazily on first use. Unknown names fall back to UTC.
package timezone
