package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairOCR(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"scattered currency keyword", "12 M D H S", "12 MDHS"},
		{"scattered kdhs", "500 K D H S", "500 KDHS"},
		{"payback keyword with stray zero", "PB0P : 4 ans", "PBP : 4 ans"},
		{"scattered tri", "T R I : 15%", "TRI : 15%"},
		{"replacement char becomes dash", "10 � 20 MDHS", "10 - 20 MDHS"},
		{"typographic dashes unified", "10 – 20 MDHS", "10 - 20 MDHS"},
		{"clean text untouched", "INVESTISSEMENT : 12 MDHS", "INVESTISSEMENT : 12 MDHS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairOCR(tt.in))
		})
	}
}

func TestRepairOCR_Idempotent(t *testing.T) {
	in := "12 M D H S et PB0P : 4 ans • T R I 15%"
	once := RepairOCR(in)
	assert.Equal(t, once, RepairOCR(once))
}

func TestProvinceGazetteer(t *testing.T) {
	fes := ProvinceGazetteer("Fès-Meknès")
	require.NotEmpty(t, fes)
	// Specific names come before the ones shared with the region name.
	assert.Equal(t, "El Hajeb", fes[0])
	assert.Equal(t, "Fès", fes[len(fes)-1])

	assert.Contains(t, ProvinceGazetteer("Béni Mellal-Khénifra"), "Khouribga")
	assert.Nil(t, ProvinceGazetteer("Souss-Massa"))
}

func TestLoadTables_BadYAML(t *testing.T) {
	_, err := loadTables([]byte("ocr_repairs: [not a map]"))
	require.Error(t, err)
}

func TestLoadTables_BadPattern(t *testing.T) {
	_, err := loadTables([]byte("ocr_repairs:\n  - {pattern: '([', replace: 'x'}\n"))
	require.Error(t, err)
}
