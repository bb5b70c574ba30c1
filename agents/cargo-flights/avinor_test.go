package cargoflights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cargo-board/shared/config"
)

const sampleFlightFeed = `<?xml version="1.0" encoding="UTF-8"?>
<airport name="OSL">
  <flights lastUpdate="2024-06-14T07:00:00Z">
    <flight uniqueID="1">
      <airline>qr</airline>
      <flight_id>QR123</flight_id>
      <schedule_time>2024-06-14T08:45:00Z</schedule_time>
      <arr_dep>A</arr_dep>
      <airport>DOH</airport>
      <status code="E" time="2024-06-14T09:00:00Z"/>
    </flight>
    <flight uniqueID="2">
      <airline>SK</airline>
      <flight_id>SK265</flight_id>
      <schedule_time>2024-06-14T06:30:00Z</schedule_time>
      <arr_dep>D</arr_dep>
      <airport>LHR</airport>
    </flight>
    <flight uniqueID="3">
      <flight_id></flight_id>
      <arr_dep>D</arr_dep>
    </flight>
  </flights>
</airport>`

func TestParseFlights(t *testing.T) {
	flights, err := ParseFlights([]byte(sampleFlightFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(flights) != 3 {
		t.Fatalf("expected 3 flights, got %d", len(flights))
	}

	// Feed order is preserved and the carrier code is uppercased
	first := flights[0]
	if first.Airline != "QR" {
		t.Errorf("expected airline QR (uppercased), got %q", first.Airline)
	}
	if first.FlightID != "QR123" {
		t.Errorf("expected flight QR123, got %q", first.FlightID)
	}
	if first.ScheduleTime != "2024-06-14T08:45:00Z" {
		t.Errorf("unexpected schedule time %q", first.ScheduleTime)
	}
	if !first.IsArrival() {
		t.Error("expected an arrival")
	}
	if first.OtherAirport != "DOH" {
		t.Errorf("expected remote airport DOH, got %q", first.OtherAirport)
	}
	if first.StatusCode != "E" || first.StatusTime != "2024-06-14T09:00:00Z" {
		t.Errorf("unexpected status %q/%q", first.StatusCode, first.StatusTime)
	}

	// A missing status element leaves both status fields empty
	second := flights[1]
	if second.StatusCode != "" || second.StatusTime != "" {
		t.Errorf("expected empty status for flight without status element, got %q/%q",
			second.StatusCode, second.StatusTime)
	}

	// Missing sub-fields default to empty strings, not an error
	third := flights[2]
	if third.Airline != "" || third.ScheduleTime != "" || third.OtherAirport != "" {
		t.Errorf("expected empty fields for sparse flight, got %+v", third)
	}
}

func TestParseFlightsEmptyFeed(t *testing.T) {
	flights, err := ParseFlights([]byte(`<airport name="OSL"><flights/></airport>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("expected no flights, got %d", len(flights))
	}
}

func TestParseFlightsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Not XML", "this is not xml"},
		{"Wrong root element", "<weather><temp>12</temp></weather>"},
		{"Truncated document", "<airport><flights><flight>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlights([]byte(tt.payload))
			if err == nil {
				t.Fatal("expected error for malformed payload, got nil")
			}

			var malformed *MalformedFeedError
			if !errors.As(err, &malformed) {
				t.Errorf("expected MalformedFeedError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseAirlineDirectory(t *testing.T) {
	payload := `<airlineNames>
  <airlineName code="sk" name="SAS"/>
  <airlineName code="QR" name="Qatar Airways"/>
  <airlineName code="QR" name="Qatar Airways Cargo"/>
  <airlineName code="" name="Nameless"/>
  <airlineName code="XX" name=""/>
</airlineNames>`

	directory, err := ParseAirlineDirectory([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(directory) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(directory), directory)
	}

	// Lowercase source codes are retrievable via uppercase lookup
	if got := directory.Resolve("SK"); got != "SAS" {
		t.Errorf("expected SAS for SK, got %q", got)
	}

	// Later duplicates overwrite earlier ones
	if got := directory.Resolve("QR"); got != "Qatar Airways Cargo" {
		t.Errorf("expected last-wins for duplicate QR, got %q", got)
	}

	// Entries missing code or name are skipped silently
	if _, ok := directory["XX"]; ok {
		t.Error("entry with empty name should have been skipped")
	}
}

func TestParseAirlineDirectoryEmpty(t *testing.T) {
	directory, err := ParseAirlineDirectory([]byte(`<airlineNames/>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directory) != 0 {
		t.Errorf("expected empty directory, got %d entries", len(directory))
	}
}

func TestParseAirlineDirectoryMalformed(t *testing.T) {
	_, err := ParseAirlineDirectory([]byte("{not xml either}"))
	if err == nil {
		t.Fatal("expected error for malformed payload, got nil")
	}
	var malformed *MalformedFeedError
	if !errors.As(err, &malformed) {
		t.Errorf("expected MalformedFeedError, got %T: %v", err, err)
	}
}

func TestFetchFlightsQueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("airport") != "OSL" {
			t.Errorf("expected airport=OSL, got %q", q.Get("airport"))
		}
		if q.Get("TimeFrom") != "1" || q.Get("TimeTo") != "24" {
			t.Errorf("expected TimeFrom=1 TimeTo=24, got %q/%q", q.Get("TimeFrom"), q.Get("TimeTo"))
		}
		w.Write([]byte(sampleFlightFeed))
	}))
	defer server.Close()

	client := NewFeedClient(&config.AvinorConfig{
		FlightsURL: server.URL,
		Airport:    "OSL",
		TimeFrom:   1,
		TimeTo:     24,
	})

	data, err := client.FetchFlights(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty response body")
	}
}

func TestFetchFlightsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewFeedClient(&config.AvinorConfig{FlightsURL: server.URL, Airport: "OSL", TimeFrom: 1, TimeTo: 24})

	_, err := client.FetchFlights(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
}

func TestFetchAirlineNamesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewFeedClient(&config.AvinorConfig{AirlinesURL: server.URL})

	_, err := client.FetchAirlineNames(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}
}
