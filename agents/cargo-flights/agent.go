package cargoflights

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"cargo-board/internal/models"
	"cargo-board/shared/config"
	"cargo-board/shared/email"
	"cargo-board/shared/monitoring"
	"cargo-board/shared/scheduler"

	"golang.org/x/sync/errgroup"
)

// BoardMetrics represents the metrics collected during a cargo board run
type BoardMetrics struct {
	FlightsFetched  int  `json:"flights_fetched"`
	AirlinesFetched int  `json:"airlines_fetched"`
	CargoFlights    int  `json:"cargo_flights"`
	EmailSent       bool `json:"email_sent"`
}

// GetSummary implements the scheduler.Metrics interface
func (m BoardMetrics) GetSummary() string {
	if m.CargoFlights == 0 {
		return fmt.Sprintf("no cargo flights among %d scheduled movements", m.FlightsFetched)
	}
	if m.EmailSent {
		return fmt.Sprintf("%d cargo flights rendered (of %d movements), email sent", m.CargoFlights, m.FlightsFetched)
	}
	return fmt.Sprintf("%d cargo flights rendered (of %d movements)", m.CargoFlights, m.FlightsFetched)
}

// CargoBoardAgent implements the scheduler.Agent interface
type CargoBoardAgent struct {
	config     *config.Config
	feedClient *FeedClient
	classifier *CargoClassifier
	formatter  *Formatter
	board      *BoardServer
	sender     *email.Sender
}

func NewCargoBoardAgent(cfg *config.Config, board *BoardServer) *CargoBoardAgent {
	return &CargoBoardAgent{
		config: cfg,
		board:  board,
	}
}

func (a *CargoBoardAgent) Name() string {
	return "Cargo Flights Agent"
}

func (a *CargoBoardAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.feedClient == nil {
		a.feedClient = NewFeedClient(&a.config.Avinor)
		log.Println("Feed client initialized")
	}

	if a.classifier == nil {
		a.classifier = NewCargoClassifier(&a.config.Cargo)
		log.Println("Cargo classifier initialized")
	}

	if a.formatter == nil {
		formatter, err := NewFormatter(a.config.Display.Timezone)
		if err != nil {
			return err
		}
		a.formatter = formatter
	}

	if a.config.Email.Enabled && a.sender == nil {
		a.sender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	log.Printf("Configured for %s, window -%dh..+%dh, timezone %s",
		a.config.Avinor.Airport,
		a.config.Avinor.TimeFrom,
		a.config.Avinor.TimeTo,
		a.config.Display.Timezone)

	return nil
}

func (a *CargoBoardAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := BoardMetrics{}

	// Allocate a generation so a stale run cannot overwrite a newer board.
	var gen uint64
	if a.board != nil {
		gen = a.board.BeginRun()
	}

	// Fetch both feeds in parallel; either failure aborts the join.
	log.Println("Fetching flight and airline-name feeds...")
	var flightsRaw, airlinesRaw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := a.feedClient.FetchFlights(gctx)
		if err != nil {
			return err
		}
		flightsRaw = data
		return nil
	})
	g.Go(func() error {
		data, err := a.feedClient.FetchAirlineNames(gctx)
		if err != nil {
			return err
		}
		airlinesRaw = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return a.fail(gen, events, startTime, err)
	}

	flights, err := ParseFlights(flightsRaw)
	if err != nil {
		return a.fail(gen, events, startTime, err)
	}
	metrics.FlightsFetched = len(flights)

	directory, err := ParseAirlineDirectory(airlinesRaw)
	if err != nil {
		return a.fail(gen, events, startTime, err)
	}
	metrics.AirlinesFetched = len(directory)

	log.Printf("Parsed %d flights and %d airline names", len(flights), len(directory))

	rows := a.buildRows(flights, directory)
	metrics.CargoFlights = len(rows)

	board := models.Board{
		Airport:     a.config.Avinor.Airport,
		GeneratedAt: time.Now(),
		Rows:        rows,
	}

	if a.board != nil {
		if a.board.Publish(gen, board) {
			monitoring.RecordBoardSize(len(rows))
		} else {
			log.Println("Discarding stale result: a newer run already published")
		}
	}

	if a.sender != nil && len(rows) > 0 {
		if err := a.sender.SendBoard(&board); err != nil {
			// Email failure leaves the rendered board intact
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("failed to send board email: %w", err), time.Since(startTime))
			}
			log.Printf("Warning: Failed to send board email: %v", err)
		} else {
			metrics.EmailSent = true
		}
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Cargo board run complete: %d cargo flights (took %v)", metrics.CargoFlights, duration)

	return nil
}

// buildRows filters the flight list down to cargo movements, sorts them by
// scheduled time and renders one display row per flight.
func (a *CargoBoardAgent) buildRows(flights []models.Flight, directory models.AirlineDirectory) []models.BoardRow {
	type keyed struct {
		flight models.Flight
		at     time.Time
	}

	cargo := make([]keyed, 0, len(flights))
	for _, flight := range flights {
		if !a.classifier.IsCargo(flight, directory) {
			continue
		}
		at, err := time.Parse(time.RFC3339, flight.ScheduleTime)
		if err != nil {
			// The feed guarantees parseable schedule times; anything else
			// sorts to the front rather than dropping the flight.
			at = time.Time{}
		}
		cargo = append(cargo, keyed{flight: flight, at: at})
	}

	sort.SliceStable(cargo, func(i, j int) bool {
		return cargo[i].at.Before(cargo[j].at)
	})

	rows := make([]models.BoardRow, 0, len(cargo))
	for _, k := range cargo {
		flight := k.flight
		name := directory.Resolve(flight.Airline)
		if name == "" {
			name = flight.Airline
		}
		rows = append(rows, models.BoardRow{
			LocalTime:    a.formatter.FormatLocalTime(flight.ScheduleTime),
			Airline:      name,
			FlightID:     flight.FlightID,
			Direction:    DescribeDirection(flight),
			OtherAirport: flight.OtherAirport,
			Status:       a.formatter.DescribeStatus(flight.StatusCode, flight.StatusTime),
		})
	}

	return rows
}

// fail publishes an error board and reports exactly one aggregated failure
// for the invocation.
func (a *CargoBoardAgent) fail(gen uint64, events *scheduler.AgentEvents, startTime time.Time, err error) error {
	wrapped := fmt.Errorf("failed to load cargo flights: %w", err)

	if a.board != nil {
		a.board.Publish(gen, models.Board{
			Airport:     a.config.Avinor.Airport,
			GeneratedAt: time.Now(),
			Err:         wrapped.Error(),
		})
	}

	if events != nil && events.OnCriticalFailure != nil {
		events.OnCriticalFailure(wrapped, time.Since(startTime))
	}

	return wrapped
}
