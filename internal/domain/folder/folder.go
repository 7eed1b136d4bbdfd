package folder

import "fmt"

// ID names a folder. Folders are static predicates over CardProgress,
// not stored state.
type ID string

const (
	IDAll      ID = "all"
	IDNew      ID = "new"
	IDUnsure   ID = "unsure"
	IDOneRight ID = "one_right"
	IDStreak2  ID = "streak_2"
	IDStreak3  ID = "streak_3"
	IDStreak4  ID = "streak_4"
	IDStreak5  ID = "streak_5"
	IDStreak6  ID = "streak_6"
	IDDiamonds ID = "diamonds"
)

// Folder is the display entry for one folder ID.
type Folder struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

var catalogue = []Folder{
	{ID: IDAll, Name: "Alle Karten"},
	{ID: IDNew, Name: "Neu"},
	{ID: IDUnsure, Name: "Unsicher"},
	{ID: IDOneRight, Name: "1× richtig"},
	{ID: IDStreak2, Name: "2× richtig"},
	{ID: IDStreak3, Name: "3× richtig"},
	{ID: IDStreak4, Name: "4× richtig"},
	{ID: IDStreak5, Name: "5× richtig"},
	{ID: IDStreak6, Name: "6× richtig"},
	{ID: IDDiamonds, Name: "Diamanten"},
}

// Catalogue returns every folder in display order.
func Catalogue() []Folder {
	out := make([]Folder, len(catalogue))
	copy(out, catalogue)
	return out
}

// Parse validates a folder ID coming from a request.
func Parse(s string) (ID, error) {
	for _, f := range catalogue {
		if string(f.ID) == s {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("unknown folder %q", s)
}
