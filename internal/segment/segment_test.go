package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_TwoSheetsWithSpill(t *testing.T) {
	pages := []string{
		"BANQUE DE PROJETS couverture",
		"PROJET N°1 : UNITE DE TRITURATION\nFILIÈRE : OLÉICULTURE",
		"INVESTISSEMENT : 12 MDHS",
		"PROJET N°2 : CONSERVERIE\nFILIÈRE : AGROALIMENTAIRE",
		"PBP : 5 ans",
	}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, 2, blocks[0].StartPage)
	assert.Equal(t, 4, blocks[1].StartPage)
	assert.Equal(t, 1, blocks[0].Index)
	assert.Equal(t, 2, blocks[1].Index)

	// Each block carries its own page plus the following page.
	assert.Contains(t, blocks[0].Text, "12 MDHS")
	assert.Contains(t, blocks[1].Text, "5 ans")
	assert.NotContains(t, blocks[0].Text, "CONSERVERIE")
}

func TestProjects_AdjacentStartsDoNotBleed(t *testing.T) {
	pages := []string{
		"couverture",
		"PROJET N°1 : FROMAGERIE",
		"PROJET N°2 : MIELLERIE",
	}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.NotContains(t, blocks[0].Text, "MIELLERIE")
}

func TestProjects_AlphanumericHeaders(t *testing.T) {
	pages := []string{
		"couverture",
		"PROJET N° T-002 STATION THERMALE",
		"détails",
		"PROJET N° NT 001 DATACENTER REGIONAL",
	}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 2, blocks[0].StartPage)
	assert.Equal(t, 4, blocks[1].StartPage)
}

func TestProjects_WeakMarkerFallback(t *testing.T) {
	pages := []string{
		"couverture",
		"PROJET : ELEVAGE CAPRIN\nDESCRIPTION une unité d'élevage",
	}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].StartPage)
}

func TestProjects_HeaderOnPageOne(t *testing.T) {
	pages := []string{
		"PROJET N°1 : FROMAGERIE",
		"détails fromagerie",
		"PROJET N°2 : MIELLERIE",
		"détails miellerie",
	}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 1, blocks[0].StartPage)
	assert.Equal(t, 3, blocks[1].StartPage)
	assert.Contains(t, blocks[0].Text, "FROMAGERIE")
	assert.Contains(t, blocks[1].Text, "MIELLERIE")
}

func TestProjects_NoMarkersFallsBackToWholeDocument(t *testing.T) {
	pages := []string{"première page", "deuxième page", "troisième page"}

	blocks, err := Projects(pages)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].StartPage)
	// Recovery keeps every page, a marker-less catalog loses nothing.
	assert.True(t, strings.Contains(blocks[0].Text, "première page"))
	assert.True(t, strings.Contains(blocks[0].Text, "deuxième page"))
	assert.True(t, strings.Contains(blocks[0].Text, "troisième page"))
}

func TestProjects_NoPages(t *testing.T) {
	_, err := Projects(nil)
	require.ErrorIs(t, err, ErrNoPages)
}

func TestWholeDocument(t *testing.T) {
	b := WholeDocument([]string{"a", "b", "c"})
	assert.Equal(t, 1, b.StartPage)
	assert.Equal(t, "a\nb", b.Text)
}
