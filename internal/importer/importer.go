package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/id"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .json.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .json")

// Result holds the outcome of an import. Rows that fail validation are
// skipped and reported; the rest are imported.
type Result struct {
	Cards   []card.Card `json:"-"`
	Created int         `json:"imported"`
	Skipped int         `json:"skipped"`
	Errors  []string    `json:"errors"`
}

// Import reads a deck, choosing the format by file extension.
func Import(r io.Reader, filename string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FromExcel(r)
	case ".json":
		return FromJSON(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Header names accepted per field, German or English, case-insensitive.
var columnAliases = map[string][]string{
	"id":          {"id"},
	"category":    {"category", "kategorie", "thema"},
	"question":    {"question", "frage"},
	"answer":      {"answer", "antwort"},
	"options":     {"options", "optionen", "auswahl"},
	"explanation": {"explanation", "erklärung", "erklaerung"},
}

// FromExcel reads the first sheet of a workbook. The first row is a header
// naming the columns; options are separated by "|" or ";".
func FromExcel(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return &Result{Errors: []string{}}, nil
	}

	columns := mapColumns(rows[0])
	for _, required := range []string{"question", "answer"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing %q column in header", required)
		}
	}

	result := &Result{Errors: make([]string, 0)}
	for i, row := range rows[1:] {
		cell := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if strings.Join(row, "") == "" {
			continue
		}

		result.add(i+2, record{
			ID:          cell("id"),
			Category:    cell("category"),
			Question:    cell("question"),
			Answer:      cell("answer"),
			Options:     splitOptions(cell("options")),
			Explanation: cell("explanation"),
		})
	}
	return result, nil
}

// FromJSON reads either a bare array of cards or {"cards": [...]}.
func FromJSON(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapped struct {
			Cards []record `json:"cards"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("invalid JSON deck: %w", err)
		}
		records = wrapped.Cards
	}

	result := &Result{Errors: make([]string, 0)}
	for i, rec := range records {
		result.add(i+1, rec)
	}
	return result, nil
}

type record struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation"`
}

// add validates one record; cards without an ID get one derived from their
// category and question so re-imports keep progress attached.
func (res *Result) add(row int, rec record) {
	c := card.Card{
		ID:          strings.TrimSpace(rec.ID),
		Category:    strings.TrimSpace(rec.Category),
		Question:    strings.TrimSpace(rec.Question),
		Answer:      strings.TrimSpace(rec.Answer),
		Options:     rec.Options,
		Explanation: strings.TrimSpace(rec.Explanation),
	}
	if c.Category == "" {
		c.Category = "Allgemein"
	}
	if c.ID == "" {
		c.ID = id.DeriveID(c.Category, c.Question)
	}
	if err := c.Validate(); err != nil {
		res.Skipped++
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", row, err))
		return
	}
	res.Cards = append(res.Cards, c)
	res.Created++
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					if _, seen := columns[field]; !seen {
						columns[field] = idx
					}
				}
			}
		}
	}
	return columns
}

func splitOptions(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ';' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
