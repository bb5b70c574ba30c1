package cargoflights

import (
	"strings"

	"cargo-board/internal/models"
	"cargo-board/shared/config"
)

// CargoClassifier decides whether a flight is operated by a cargo carrier.
// The code set and keyword list are fixed at construction; classification is
// a pure function of the flight and the directory.
type CargoClassifier struct {
	codes    map[string]bool
	keywords []string
}

func NewCargoClassifier(cfg *config.CargoConfig) *CargoClassifier {
	codes := make(map[string]bool, len(cfg.Codes))
	for _, code := range cfg.Codes {
		codes[strings.ToUpper(strings.TrimSpace(code))] = true
	}

	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}

	return &CargoClassifier{
		codes:    codes,
		keywords: keywords,
	}
}

// IsCargo reports whether the flight is a cargo movement: first by membership
// in the static carrier-code set, then by a case-insensitive keyword match
// against the airline name resolved through the directory. An unresolvable
// code is treated as an empty name.
func (c *CargoClassifier) IsCargo(flight models.Flight, directory models.AirlineDirectory) bool {
	if c.codes[flight.Airline] {
		return true
	}

	name := strings.ToLower(directory.Resolve(flight.Airline))
	if name == "" {
		return false
	}

	for _, kw := range c.keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}

	return false
}
