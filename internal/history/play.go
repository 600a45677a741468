package history

import (
	"fmt"
	"time"
)

// MinMinutes is the shortest play kept in a Table. Anything at or below it is a skip.
const MinMinutes = 0.5

// Play is a single cleaned listening event.
type Play struct {
	Timestamp time.Time
	MsPlayed  int64
	Artist    *string
	Platform  *string
}

func (p Play) Minutes() float64 {
	return float64(p.MsPlayed) / 60000
}

func (p Play) Year() int {
	return p.Timestamp.Year()
}

func (p Play) Month() Month {
	return Month{Year: p.Timestamp.Year(), Month: p.Timestamp.Month()}
}

// Date returns the calendar day of the play as yyyy-mm-dd.
func (p Play) Date() string {
	return p.Timestamp.Format("2006-01-02")
}

func (p Play) Weekday() time.Weekday {
	return p.Timestamp.Weekday()
}

func (p Play) Hour() int {
	return p.Timestamp.Hour()
}

// ArtistName returns the artist, or "" when it is missing.
func (p Play) ArtistName() string {
	if p.Artist == nil {
		return ""
	}
	return *p.Artist
}

// PlatformName returns the platform, or "" when it is missing.
func (p Play) PlatformName() string {
	if p.Platform == nil {
		return ""
	}
	return *p.Platform
}

// Month is a year-month bucket.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is chronologically earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Weekdays lists the days of the week in display order, Monday first.
var Weekdays = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WeekdayIndex returns the position of d in Weekdays.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
