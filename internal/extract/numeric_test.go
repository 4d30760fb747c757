package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"labeled mdhs single", "INVESTISSEMENT : 12 MDHS", 12_000_000},
		{"mdhs range collapses to mean", "Budget estimé 10 - 20 MDHS", 15_000_000},
		{"mn mdhs range", "5 à 7 Mn MDHS", 6_000_000},
		{"kdhs single", "500 KDHS", 500_000},
		{"kdhs range", "300 à 500 KDHS", 400_000},
		{"potentiel label in millions", "Investissement potentiel (en MDH) : 2,5 MDH", 2_500_000},
		{"potentiel label already in dirhams", "Investissement potentiel (en MDH) : 4 500 000 MDH", 4_500_000},
		{"dhs amount on revenue line", "- 2 500 000 DHS - CA prévisionnel", 2_500_000},
		{"bare mdh single", "un projet de 3 MDH environ", 3_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Investment(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestInvestment_Absent(t *testing.T) {
	_, ok := Investment("aucune donnée financière")
	assert.False(t, ok)
}

func TestPayback(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"pbp single", "PBP : 5 ans", 5},
		{"pbp range collapses to mean", "PBP : 4-5 ans", 4.5},
		{"retour sur investissement range", "Retour sur investissement (nombre d'années) : 5 à 7 ans", 6},
		{"roi expressed in years is a payback", "ROI : 4-5 ans", 4.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Payback(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"single with percent", "TRI : 15%", 15},
		{"range", "TRI : 15-20%", 17.5},
		{"moyen variant without percent", "TRI moyen : 12", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ROI(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestLandArea(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"labeled m2", "Superficie souhaitée du terrain : 5 000 m2", 5000},
		{"labeled hectares", "Superficie souhaitée du terrain : 2 Ha", 20_000},
		{"sup m2 range", "Sup : 1000 - 2000 m2", 1500},
		{"sup hectares with decimal", "Sup : 1,5 Ha", 15_000},
		{"bare terrain", "terrain : 800 m²", 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LandArea(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestBuildingArea(t *testing.T) {
	got, ok := BuildingArea("avec construction de 1 200 m2 couverts")
	require.True(t, ok)
	assert.InDelta(t, 1200, got, 0.01)

	_, ok = BuildingArea("sans bâtiment")
	assert.False(t, ok)
}
