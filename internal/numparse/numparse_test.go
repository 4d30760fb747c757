package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "500", want: 500},
		{name: "decimal comma", input: "1,5", want: 1.5},
		{name: "decimal point", input: "2.75", want: 2.75},
		{name: "thousands spaces", input: "900 000", want: 900000},
		{name: "non-breaking space", input: "150 000", want: 150000},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "12a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollapseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "hyphen range", input: "10-20", want: 15},
		{name: "a accent range", input: "5 à 7", want: 6},
		{name: "en dash", input: "4 – 6", want: 5},
		{name: "single value", input: "12", want: 12},
		{name: "decimal range", input: "1,5 - 2,5", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CollapseRange(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCurrencyAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		unit string
		want float64
	}{
		{name: "KDHS", raw: "500", unit: "KDHS", want: 500_000},
		{name: "MDH", raw: "2", unit: "MDH", want: 2_000_000},
		{name: "MDHS range", raw: "15-35", unit: "MDHS", want: 25_000_000},
		{name: "Mn MDHS variant", raw: "50 - 75", unit: "Mn MDHS", want: 62_500_000},
		{name: "DH passthrough", raw: "900 000", unit: "DH", want: 900_000},
		{name: "DHS passthrough", raw: "150 000", unit: "DHS", want: 150_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrencyAmount(tt.raw, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestAreaAmount(t *testing.T) {
	got, err := AreaAmount("1.5", "Ha")
	require.NoError(t, err)
	assert.InDelta(t, 15_000, got, 1e-9)

	got, err = AreaAmount("200 à 300", "m2")
	require.NoError(t, err)
	assert.InDelta(t, 250, got, 1e-9)

	got, err = AreaAmount("120", "m²")
	require.NoError(t, err)
	assert.InDelta(t, 120, got, 1e-9)
}

func TestUnknownUnit(t *testing.T) {
	_, err := Currency(10, "EUR")
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Area(10, "acres")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 16.67, Round2(100.0/6.0))
	assert.Equal(t, 20.0, Round2(100.0/5.0))
}
