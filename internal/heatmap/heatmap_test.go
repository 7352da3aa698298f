package heatmap

import (
	"testing"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
	"github.com/Mamtagurjar/daily-puzzle/internal/store"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		name string
		act  *store.Activity
		want int
	}{
		{"nil", nil, 0},
		{"unsolved", &store.Activity{Solved: false, Score: 100}, 0},
		{"near perfect", &store.Activity{Solved: true, Score: 95, Difficulty: puzzle.Easy}, 4},
		{"hard strong", &store.Activity{Solved: true, Score: 85, Difficulty: puzzle.Hard}, 3},
		{"medium strong", &store.Activity{Solved: true, Score: 72, Difficulty: puzzle.Medium}, 2},
		{"easy solved", &store.Activity{Solved: true, Score: 66, Difficulty: puzzle.Easy}, 1},
		{"hard weak", &store.Activity{Solved: true, Score: 50, Difficulty: puzzle.Hard}, 1},
	}

	for _, tt := range tests {
		if got := Intensity(tt.act); got != tt.want {
			t.Errorf("%s: Intensity = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestYear_ShapeAndOrder(t *testing.T) {
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	acts := []store.Activity{
		{Date: "2024-03-09", Solved: true, Score: 96, Difficulty: puzzle.Easy},
		{Date: "2024-03-10", Solved: true, Score: 60, Difficulty: puzzle.Easy},
	}

	cells := Year(acts, today)
	if len(cells) != 365 {
		t.Fatalf("cell count = %d, want 365", len(cells))
	}
	if cells[0].Date != "2023-03-12" {
		t.Errorf("first cell = %s, want 2023-03-12", cells[0].Date)
	}
	if last := cells[len(cells)-1]; last.Date != "2024-03-10" || last.Intensity != 1 {
		t.Errorf("last cell = %+v, want today at intensity 1", last)
	}
	if prev := cells[len(cells)-2]; prev.Intensity != 4 {
		t.Errorf("yesterday intensity = %d, want 4", prev.Intensity)
	}
}

func TestLevelCounts(t *testing.T) {
	cells := []Cell{{Intensity: 0}, {Intensity: 0}, {Intensity: 1}, {Intensity: 4}}
	counts := LevelCounts(cells)
	if counts[0] != 2 || counts[1] != 1 || counts[4] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
