package cargoflights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cargo-board/internal/models"
	"cargo-board/shared/config"
)

func newTestClassifier() *CargoClassifier {
	return NewCargoClassifier(&config.CargoConfig{
		Codes:    []string{"CV", "RU", "QY", "5X", "FX"},
		Keywords: []string{"cargo", "freight"},
	})
}

func TestIsCargoByCode(t *testing.T) {
	classifier := newTestClassifier()

	// Code membership wins regardless of directory contents
	assert.True(t, classifier.IsCargo(models.Flight{Airline: "CV"}, models.AirlineDirectory{}))
	assert.True(t, classifier.IsCargo(models.Flight{Airline: "5X"}, nil))
	assert.True(t, classifier.IsCargo(
		models.Flight{Airline: "FX"},
		models.AirlineDirectory{"FX": "FedEx"}, // no keyword in the name either
	))
}

func TestIsCargoByKeyword(t *testing.T) {
	classifier := newTestClassifier()
	directory := models.AirlineDirectory{
		"QR": "Qatar Airways Cargo",
		"CL": "Cargolux Italia",
		"GF": "Nordic Global Freight",
		"SK": "SAS",
	}

	tests := []struct {
		name    string
		airline string
		want    bool
	}{
		{"Keyword at end of name", "QR", true},
		{"Keyword at start of name", "CL", true},
		{"Second keyword", "GF", true},
		{"Passenger carrier", "SK", false},
		{"Unknown code resolves to empty name", "ZZ", false},
		{"Empty airline code", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.IsCargo(models.Flight{Airline: tt.airline}, directory)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCargoKeywordCaseInsensitive(t *testing.T) {
	classifier := newTestClassifier()

	for _, name := range []string{"ACME CARGO", "Acme Cargo", "acme cargo", "AcMe CaRgO"} {
		directory := models.AirlineDirectory{"AC": name}
		assert.True(t, classifier.IsCargo(models.Flight{Airline: "AC"}, directory),
			"expected match for name %q", name)
	}
}

func TestIsCargoCodeNormalization(t *testing.T) {
	// Codes configured in lowercase still match uppercased flight codes
	classifier := NewCargoClassifier(&config.CargoConfig{
		Codes:    []string{" cv "},
		Keywords: []string{"CARGO"},
	})

	assert.True(t, classifier.IsCargo(models.Flight{Airline: "CV"}, nil))
	assert.True(t, classifier.IsCargo(
		models.Flight{Airline: "QR"},
		models.AirlineDirectory{"QR": "Qatar Airways Cargo"},
	))
}

func TestIsCargoIsPure(t *testing.T) {
	classifier := newTestClassifier()
	directory := models.AirlineDirectory{"QR": "Qatar Airways Cargo"}
	flight := models.Flight{Airline: "QR"}

	first := classifier.IsCargo(flight, directory)
	second := classifier.IsCargo(flight, directory)

	assert.Equal(t, first, second)
	assert.Equal(t, "Qatar Airways Cargo", directory["QR"], "directory must not be mutated")
}
