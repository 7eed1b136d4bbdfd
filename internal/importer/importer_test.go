package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fsp-trainer/backend/internal/importer"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestFromExcel(t *testing.T) {
	buf := workbook(t,
		[]any{"Kategorie", "Frage", "Antwort", "Optionen", "Erklärung"},
		[]any{"Kardiologie", "Was bedeutet KHK?", "Koronare Herzkrankheit", "Koronare Herzkrankheit | Kardiale Hypertonie", "Häufige Prüfungsfrage"},
		[]any{},
		[]any{"Kardiologie", "Frage ohne Antwort", ""},
		[]any{"", "Was ist ein Ikterus?", "Gelbsucht"},
	)

	res, err := importer.Import(buf, "deck.XLSX")
	require.NoError(t, err)

	require.Len(t, res.Cards, 2)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 4")

	first := res.Cards[0]
	assert.Equal(t, "Kardiologie", first.Category)
	assert.Equal(t, []string{"Koronare Herzkrankheit", "Kardiale Hypertonie"}, first.Options)
	assert.Equal(t, "Häufige Prüfungsfrage", first.Explanation)
	assert.Len(t, first.ID, 32)

	assert.Equal(t, "Allgemein", res.Cards[1].Category)
}

func TestFromExcel_StableIDs(t *testing.T) {
	rows := [][]any{
		{"category", "question", "answer"},
		{"Pneumologie", "Was ist COPD?", "Chronisch obstruktive Lungenerkrankung"},
	}
	a, err := importer.FromExcel(workbook(t, rows...))
	require.NoError(t, err)
	b, err := importer.FromExcel(workbook(t, rows...))
	require.NoError(t, err)

	assert.Equal(t, a.Cards[0].ID, b.Cards[0].ID)
}

func TestFromExcel_MissingColumns(t *testing.T) {
	_, err := importer.FromExcel(workbook(t, []any{"Kategorie", "Text"}, []any{"x", "y"}))
	assert.ErrorContains(t, err, "question")
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"array", `[{"id":"c1","category":"Neurologie","question":"Was ist ein Apoplex?","answer":"Schlaganfall"}]`, 1},
		{"wrapped", `{"cards":[{"question":"Was ist Dyspnoe?","answer":"Atemnot","options":["Atemnot","Husten"]}]}`, 1},
		{"empty", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := importer.Import(strings.NewReader(tt.input), "deck.json")
			require.NoError(t, err)
			assert.Len(t, res.Cards, tt.want)
		})
	}
}

func TestFromJSON_KeepsGivenID(t *testing.T) {
	res, err := importer.FromJSON(strings.NewReader(`[{"id":" c1 ","question":"Q","answer":"A"}]`))
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "c1", res.Cards[0].ID)
}

func TestImport_Errors(t *testing.T) {
	_, err := importer.Import(strings.NewReader("a,b"), "deck.csv")
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)

	_, err = importer.Import(strings.NewReader("{kaputt"), "deck.json")
	assert.Error(t, err)
}
