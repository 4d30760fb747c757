package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pathHint string
		want     string
	}{
		{"marker in text", "Banque de projets de la région Fès-Meknès", "", "Fès-Meknès"},
		{"province name implies region", "une unité à Khénifra", "", "Béni Mellal-Khénifra"},
		{"explicit region line", "Région : Souss-Massa\nsuite", "", "Souss-Massa"},
		{"hint from document path", "texte sans indice", "/data/coeurdumaroc-projets.pdf", "Béni Mellal-Khénifra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Region(tt.text, tt.pathHint)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegion_Absent(t *testing.T) {
	_, ok := Region("aucun indice géographique", "/data/catalogue.pdf")
	assert.False(t, ok)
}

func TestProvince(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		region string
		want   string
	}{
		{"gazetteer hit", "implantation prévue à Khouribga", "Béni Mellal-Khénifra", "Khouribga"},
		{"specific name beats region name", "El Hajeb, région Fès-Meknès", "Fès-Meknès", "El Hajeb"},
		{"glued el hajeb", "zone ElHajeb", "Fès-Meknès", "El Hajeb"},
		{"explicit province line", "Province : Errachidia\n", "", "Errachidia"},
		{"lieu fallback", "Lieu : Commune rurale Ait Ourir\n", "", "Commune rurale Ait Ourir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Province(tt.text, tt.region, 40)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvince_LieuRejected(t *testing.T) {
	// Digits mark the Lieu line as measurement noise, not a place name.
	_, ok := Province("Lieu : à 12 km du centre\n", "", 40)
	assert.False(t, ok)

	// The threshold is a parameter, a stricter cap rejects longer values.
	_, ok = Province("Lieu : Commune rurale Ait Ourir\n", "", 10)
	assert.False(t, ok)
}

func TestZones(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"known zone verbatim", "implantation à AGROPOLIS Meknès", []string{"AGROPOLIS"}},
		{"future zi", "Future ZI Souk-Sebt Sup : 5000 m2", []string{"Future ZI Souk-Sebt"}},
		{"zi capped at two name tokens", "ZI Ain Bida Ouest et alentours", []string{"ZI Ain Bida"}},
		{"zae", "parcelle en ZAE Azilal", []string{"ZAE Azilal"}},
		{"equipment list is not a zone", "ZI Chaînes de conditionnement", nil},
		{"known and pattern dedupe", "ZI AIN BIDA disponible", []string{"ZI AIN BIDA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Zones(tt.text))
		})
	}
}

func TestJoinZones(t *testing.T) {
	assert.Equal(t, "AGROPOLIS; ZI AIN BIDA", JoinZones([]string{"AGROPOLIS", "ZI AIN BIDA"}))
	assert.Equal(t, "", JoinZones(nil))
}

func TestPublicationDate(t *testing.T) {
	tests := []struct {
		name     string
		cover    string
		filename string
		want     string
	}{
		{"cover day month year", "Édition du 23/05/2025", "x.pdf", "2025-05-23"},
		{"cover year first", "2025-05-23 Fès", "x.pdf", "2025-05-23"},
		{"cover spaced digits", "Fès le 23 05 2025", "x.pdf", "2025-05-23"},
		{"filename eight digits", "", "banque-projets-23052025.pdf", "2025-05-23"},
		{"filename six digits", "", "catalogue-230525.pdf", "2025-05-23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PublicationDate(tt.cover, tt.filename)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicationDate_Absent(t *testing.T) {
	_, ok := PublicationDate("couverture sans date", "catalogue.pdf")
	assert.False(t, ok)
}
