package cargoflights

import (
	"fmt"
	"time"

	"cargo-board/internal/models"
)

// Status codes as supplied by the flight feed.
const (
	statusArrived   = "A"
	statusCancelled = "C"
	statusDeparted  = "D"
	statusNewTime   = "E"
	statusNewInfo   = "N"
)

// Formatter renders feed timestamps as local wall-clock strings and status
// codes as display text.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(timezone string) (*Formatter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}
	return &Formatter{loc: loc}, nil
}

// FormatLocalTime converts a UTC feed timestamp to the board timezone and
// renders it as "02 Jan 15:04". Empty or unparseable input yields an empty
// string rather than an error.
func (f *Formatter) FormatLocalTime(timestamp string) string {
	if timestamp == "" {
		return ""
	}

	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}

	return t.In(f.loc).Format("02 Jan 15:04")
}

// DescribeStatus maps a feed status code to its display phrase. The new-time
// code embeds the localized status time; when the feed omits that time the
// trailing space is kept, matching the board's historical output. Unknown
// codes pass through verbatim.
func (f *Formatter) DescribeStatus(code, statusTime string) string {
	switch code {
	case "":
		return ""
	case statusArrived:
		return "Arrived"
	case statusCancelled:
		return "Cancelled"
	case statusDeparted:
		return "Departed"
	case statusNewInfo:
		return "New info"
	case statusNewTime:
		return "New time " + f.FormatLocalTime(statusTime)
	default:
		return code
	}
}

// DescribeDirection maps the feed's arr_dep code to display text.
func DescribeDirection(flight models.Flight) string {
	if flight.IsArrival() {
		return "Arrival"
	}
	return "Departure"
}
