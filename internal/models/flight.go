package models

// Flight represents one scheduled movement from the Avinor flight feed.
// Timestamps are kept as the feed supplies them (UTC, RFC3339); parsing
// happens at sort/format time.
type Flight struct {
	Airline      string `json:"airline"`       // carrier code, uppercased
	FlightID     string `json:"flight_id"`     // e.g. "QR123"
	ScheduleTime string `json:"schedule_time"` // UTC, e.g. "2024-06-14T08:45:00Z"
	Direction    string `json:"direction"`     // "A" = arrival, anything else = departure
	OtherAirport string `json:"other_airport"` // remote airport code
	StatusCode   string `json:"status_code"`   // A, C, D, E, N, "" or unknown
	StatusTime   string `json:"status_time"`   // UTC, set mainly with status code E
}

// IsArrival reports whether the movement is an arrival at the board airport.
func (f Flight) IsArrival() bool {
	return f.Direction == "A"
}

// AirlineDirectory maps uppercased carrier codes to display names for one
// fetch cycle.
type AirlineDirectory map[string]string

// Resolve returns the display name for a carrier code, or the empty string
// when the code is unknown.
func (d AirlineDirectory) Resolve(code string) string {
	return d[code]
}
