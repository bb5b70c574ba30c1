package cargoflights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOsloFormatter(t *testing.T) *Formatter {
	t.Helper()
	formatter, err := NewFormatter("Europe/Oslo")
	require.NoError(t, err)
	return formatter
}

func TestFormatLocalTime(t *testing.T) {
	formatter := newOsloFormatter(t)

	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		// Oslo is UTC+2 in June (CEST) and UTC+1 in January (CET)
		{"Summer time", "2024-06-14T08:45:00Z", "14 Jun 10:45"},
		{"Winter time", "2024-01-14T08:45:00Z", "14 Jan 09:45"},
		{"Crosses midnight locally", "2024-06-14T22:30:00Z", "15 Jun 00:30"},
		{"Empty input", "", ""},
		{"Unparseable input", "not-a-timestamp", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatLocalTime(tt.timestamp))
		})
	}
}

func TestFormatLocalTimeDeterministic(t *testing.T) {
	formatter := newOsloFormatter(t)

	first := formatter.FormatLocalTime("2024-06-14T08:45:00Z")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, formatter.FormatLocalTime("2024-06-14T08:45:00Z"))
	}
}

func TestDescribeStatus(t *testing.T) {
	formatter := newOsloFormatter(t)

	tests := []struct {
		name       string
		code       string
		statusTime string
		want       string
	}{
		{"Arrived", "A", "", "Arrived"},
		{"Cancelled", "C", "", "Cancelled"},
		{"Departed", "D", "", "Departed"},
		{"New info", "N", "", "New info"},
		{"New time with timestamp", "E", "2024-06-14T09:00:00Z", "New time 14 Jun 11:00"},
		{"New time without timestamp keeps trailing space", "E", "", "New time "},
		{"Unknown code passes through", "X", "", "X"},
		{"Absent code", "", "2024-06-14T09:00:00Z", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.DescribeStatus(tt.code, tt.statusTime))
		})
	}
}

func TestNewFormatterUnknownTimezone(t *testing.T) {
	_, err := NewFormatter("Not/AZone")
	require.Error(t, err)
}
