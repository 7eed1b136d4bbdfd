package folder_test

import (
	"testing"

	"github.com/fsp-trainer/backend/internal/domain/folder"
	"github.com/fsp-trainer/backend/internal/domain/progress"
)

func right() *bool { b := true; return &b }
func wrong() *bool { b := false; return &b }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		p    progress.CardProgress
		want folder.ID
	}{
		{"fresh card", progress.CardProgress{}, folder.IDNew},
		{"last wrong", progress.CardProgress{Introduced: true, LastResult: wrong()}, folder.IDUnsure},
		{"one right", progress.CardProgress{Introduced: true, LastResult: right(), Streak: 1}, folder.IDOneRight},
		{"streak 2", progress.CardProgress{Introduced: true, LastResult: right(), Streak: 2}, folder.IDStreak2},
		{"streak 6", progress.CardProgress{Introduced: true, LastResult: right(), Streak: 6}, folder.IDStreak6},
		{"diamond", progress.CardProgress{Introduced: true, LastResult: right(), Streak: 7}, folder.IDDiamonds},
		{"diamond wins over not introduced", progress.CardProgress{Streak: 7}, folder.IDDiamonds},
		{"introduced without result", progress.CardProgress{Introduced: true}, folder.IDUnsure},
		{"right with zero streak", progress.CardProgress{Introduced: true, LastResult: right()}, folder.IDUnsure},
		{"streak without result", progress.CardProgress{Introduced: true, Streak: 3}, folder.IDUnsure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := folder.Classify(tt.p); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	p := progress.CardProgress{Introduced: true, LastResult: right(), Streak: 3}

	if !folder.Contains(folder.IDAll, p) {
		t.Error("every card belongs to all")
	}
	if !folder.Contains(folder.IDStreak3, p) {
		t.Error("expected streak_3 membership")
	}
	for _, id := range []folder.ID{folder.IDNew, folder.IDUnsure, folder.IDOneRight, folder.IDStreak2, folder.IDDiamonds} {
		if folder.Contains(id, p) {
			t.Errorf("unexpected membership in %q", id)
		}
	}
}

func TestRecordTransitions(t *testing.T) {
	var p progress.CardProgress
	if folder.Classify(p) != folder.IDNew {
		t.Fatal("expected new")
	}

	p.Record(true, "2026-03-02")
	if got := folder.Classify(p); got != folder.IDOneRight {
		t.Fatalf("after first right: got %q", got)
	}

	p.Record(false, "2026-03-02")
	if got := folder.Classify(p); got != folder.IDUnsure {
		t.Fatalf("after wrong: got %q", got)
	}

	for i := 0; i < 7; i++ {
		p.Record(true, "2026-03-03")
	}
	if got := folder.Classify(p); got != folder.IDDiamonds {
		t.Fatalf("after seven right: got %q", got)
	}

	p.Record(false, "2026-03-04")
	if got := folder.Classify(p); got != folder.IDUnsure {
		t.Fatalf("diamond answered wrong: got %q", got)
	}
}

func TestParse(t *testing.T) {
	id, err := folder.Parse("streak_4")
	if err != nil || id != folder.IDStreak4 {
		t.Errorf("Parse(streak_4) = %q, %v", id, err)
	}
	if _, err := folder.Parse("streak_9"); err == nil {
		t.Error("expected error for unknown folder")
	}
}

func TestCatalogue(t *testing.T) {
	cat := folder.Catalogue()
	if len(cat) != 10 {
		t.Fatalf("expected 10 folders, got %d", len(cat))
	}
	cat[0].Name = "changed"
	if folder.Catalogue()[0].Name == "changed" {
		t.Error("Catalogue must return a copy")
	}
}
