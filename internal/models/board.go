package models

import "time"

// BoardRow is one rendered line of the cargo board.
type BoardRow struct {
	LocalTime    string `json:"local_time"`    // "02 Jan 15:04" in the board timezone
	Airline      string `json:"airline"`       // resolved name, or the raw code as fallback
	FlightID     string `json:"flight_id"`
	Direction    string `json:"direction"`     // "Arrival" or "Departure"
	OtherAirport string `json:"other_airport"`
	Status       string `json:"status"`        // human-readable status, may be empty
}

// Board is the result of one pipeline run, handed to the renderers.
// Exactly one of Rows and Err carries information; an empty Rows with an
// empty Err renders as a single placeholder line.
type Board struct {
	Airport     string     `json:"airport"`
	GeneratedAt time.Time  `json:"generated_at"`
	Rows        []BoardRow `json:"rows"`
	Err         string     `json:"error,omitempty"`
}
