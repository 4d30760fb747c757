package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "output_projects.csv", cfg.OutputCSV)
	assert.Equal(t, 40, cfg.Extraction.ProvinceMaxLen)
	assert.Zero(t, cfg.Extraction.PaybackFallbackYears)
}

func TestLoad_FromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("output_csv", "/data/projects.csv")
	viper.Set("extraction.province_max_len", 25)
	viper.Set("extraction.payback_fallback_years", 6)
	viper.Set("sources.benimellal.region", "Béni Mellal-Khénifra")
	viper.Set("sources.benimellal.listing_url", "https://www.coeurdumaroc.ma/fr/projects")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/projects.csv", cfg.OutputCSV)
	assert.Equal(t, 25, cfg.Extraction.ProvinceMaxLen)
	assert.Equal(t, 6.0, cfg.Extraction.PaybackFallbackYears)

	src, err := cfg.SourceProfile("benimellal")
	require.NoError(t, err)
	assert.Equal(t, "CRI Béni Mellal-Khénifra", src.SourceType)
	assert.Equal(t, "benimellal", src.PDFDir)
	assert.Equal(t, "https://www.coeurdumaroc.ma/fr/projects", src.ListingURL)
}

func TestSourceProfile_Unknown(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.SourceProfile("inconnu")
	require.ErrorIs(t, err, ErrNoSource)
}
