package importer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/importer"
)

func TestExportExcel_RoundTrip(t *testing.T) {
	cards := []card.Card{
		{ID: "c1", Category: "Kardiologie", Question: "Was ist Angina pectoris?", Answer: "Brustenge", Options: []string{"Brustenge", "Atemnot"}},
		{ID: "c2", Category: "Neurologie", Question: "Was ist eine Aphasie?", Answer: "Sprachstörung", Explanation: "Oft nach Apoplex"},
	}

	var buf bytes.Buffer
	require.NoError(t, importer.ExportExcel(&buf, cards))

	res, err := importer.FromExcel(&buf)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, cards, res.Cards)
}
