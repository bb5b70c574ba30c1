package cargoflights

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cargo-board/internal/models"
	"cargo-board/shared/config"
	"cargo-board/shared/monitoring"
)

// MalformedFeedError indicates that a feed payload could not be decoded into
// the expected structure. Missing optional fields inside a well-formed
// payload never raise it.
type MalformedFeedError struct {
	Feed string
	Err  error
}

func (e *MalformedFeedError) Error() string {
	return fmt.Sprintf("malformed %s feed: %v", e.Feed, e.Err)
}

func (e *MalformedFeedError) Unwrap() error {
	return e.Err
}

// FeedClient handles interactions with the Avinor flight and airline-name feeds
type FeedClient struct {
	config *config.AvinorConfig
	client *http.Client
}

func NewFeedClient(cfg *config.AvinorConfig) *FeedClient {
	return &FeedClient{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// flightFeed mirrors the XML shape of the Avinor flight feed.
type flightFeed struct {
	XMLName xml.Name     `xml:"airport"`
	Flights []flightElem `xml:"flights>flight"`
}

type flightElem struct {
	Airline      string      `xml:"airline"`
	FlightID     string      `xml:"flight_id"`
	ScheduleTime string      `xml:"schedule_time"`
	ArrDep       string      `xml:"arr_dep"`
	Airport      string      `xml:"airport"`
	Status       *statusElem `xml:"status"`
}

type statusElem struct {
	Code string `xml:"code,attr"`
	Time string `xml:"time,attr"`
}

// airlineFeed mirrors the XML shape of the airline-names feed.
type airlineFeed struct {
	XMLName  xml.Name      `xml:"airlineNames"`
	Airlines []airlineElem `xml:"airlineName"`
}

type airlineElem struct {
	Code string `xml:"code,attr"`
	Name string `xml:"name,attr"`
}

// FetchFlights retrieves the raw flight feed for the configured airport and
// lookahead window.
func (c *FeedClient) FetchFlights(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(c.config.FlightsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid flights URL %s: %w", c.config.FlightsURL, err)
	}

	q := u.Query()
	q.Set("airport", c.config.Airport)
	q.Set("TimeFrom", strconv.Itoa(c.config.TimeFrom))
	q.Set("TimeTo", strconv.Itoa(c.config.TimeTo))
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	monitoring.RecordFeedFetch("flights", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight feed: %w", err)
	}
	return body, nil
}

// FetchAirlineNames retrieves the raw airline-name directory feed.
func (c *FeedClient) FetchAirlineNames(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, c.config.AirlinesURL)
	monitoring.RecordFeedFetch("airlines", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airline names: %w", err)
	}
	return body, nil
}

func (c *FeedClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	log.Printf("Fetching feed from: %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ParseFlights decodes the flight feed into flight records, preserving feed
// order. Missing sub-fields default to empty strings and a missing status
// element leaves both status fields empty; only an undecodable payload is an
// error.
func ParseFlights(data []byte) ([]models.Flight, error) {
	var feed flightFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, &MalformedFeedError{Feed: "flight", Err: err}
	}

	flights := make([]models.Flight, 0, len(feed.Flights))
	for _, elem := range feed.Flights {
		flight := models.Flight{
			Airline:      strings.ToUpper(strings.TrimSpace(elem.Airline)),
			FlightID:     elem.FlightID,
			ScheduleTime: elem.ScheduleTime,
			Direction:    elem.ArrDep,
			OtherAirport: elem.Airport,
		}
		if elem.Status != nil {
			flight.StatusCode = elem.Status.Code
			flight.StatusTime = elem.Status.Time
		}
		flights = append(flights, flight)
	}

	return flights, nil
}

// ParseAirlineDirectory decodes the airline-name feed into a directory keyed
// by uppercased carrier code. Entries missing a code or a name are skipped;
// later duplicates overwrite earlier ones.
func ParseAirlineDirectory(data []byte) (models.AirlineDirectory, error) {
	var feed airlineFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, &MalformedFeedError{Feed: "airline name", Err: err}
	}

	directory := make(models.AirlineDirectory, len(feed.Airlines))
	for _, elem := range feed.Airlines {
		code := strings.ToUpper(strings.TrimSpace(elem.Code))
		if code == "" || elem.Name == "" {
			continue
		}
		directory[code] = elem.Name
	}

	return directory, nil
}
