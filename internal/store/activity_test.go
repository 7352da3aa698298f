package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mamtagurjar/daily-puzzle/internal/puzzle"
)

func testActivity(date string) Activity {
	return Activity{
		Date:             date,
		Solved:           true,
		Score:            69,
		TimeTakenSeconds: 45,
		Difficulty:       puzzle.Easy,
		HintsUsed:        1,
	}
}

func TestActivitySaveAndGet(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	if err := repo.Save(ctx, "u1", testActivity("2024-03-04")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "u1", "2024-03-04")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a row, got nil")
	}
	if !got.Solved || got.Score != 69 || got.TimeTakenSeconds != 45 ||
		got.Difficulty != puzzle.Easy || got.HintsUsed != 1 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.Synced {
		t.Error("fresh row should not be synced")
	}
	if got.CompletedAt.IsZero() {
		t.Error("CompletedAt not set on first write")
	}
}

func TestActivityGet_AbsentReturnsNil(t *testing.T) {
	repo := openTestStore(t).Activities()

	got, err := repo.Get(context.Background(), "u1", "2024-03-04")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent row, got %+v", got)
	}
}

func TestActivitySave_PreservesCompletedAt(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	first := testActivity("2024-03-04")
	first.CompletedAt = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	if err := repo.Save(ctx, "u1", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := testActivity("2024-03-04")
	second.Score = 80
	second.CompletedAt = time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, "u1", second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Get(ctx, "u1", "2024-03-04")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CompletedAt.Equal(first.CompletedAt) {
		t.Errorf("CompletedAt changed: %v, want %v", got.CompletedAt, first.CompletedAt)
	}
}

func TestActivitySave_SyncedSurvivesIdenticalRewrite(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	if err := repo.Save(ctx, "u1", testActivity("2024-03-04")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.MarkSynced(ctx, "u1", []string{"2024-03-04"}); err != nil {
		t.Fatalf("mark synced: %v", err)
	}

	// Same content again: synced must not regress.
	if err := repo.Save(ctx, "u1", testActivity("2024-03-04")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	got, _ := repo.Get(ctx, "u1", "2024-03-04")
	if !got.Synced {
		t.Error("identical rewrite cleared the synced flag")
	}

	// Changed content: the row is dirty again.
	changed := testActivity("2024-03-04")
	changed.Score = 75
	if err := repo.Save(ctx, "u1", changed); err != nil {
		t.Fatalf("changed save: %v", err)
	}
	got, _ = repo.Get(ctx, "u1", "2024-03-04")
	if got.Synced {
		t.Error("content change did not clear the synced flag")
	}
}

func TestActivitySave_RejectsOutOfBounds(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Activity)
	}{
		{"bad date", func(a *Activity) { a.Date = "04-03-2024" }},
		{"negative score", func(a *Activity) { a.Score = -1 }},
		{"score above 100", func(a *Activity) { a.Score = 101 }},
		{"zero time", func(a *Activity) { a.TimeTakenSeconds = 0 }},
		{"absurd time", func(a *Activity) { a.TimeTakenSeconds = 7201 }},
		{"too many hints", func(a *Activity) { a.HintsUsed = 4 }},
		{"unknown difficulty", func(a *Activity) { a.Difficulty = "extreme" }},
	}

	for _, tt := range tests {
		a := testActivity("2024-03-04")
		tt.mutate(&a)
		err := repo.Save(ctx, "u1", a)
		if !errors.Is(err, ErrInvalidActivity) {
			t.Errorf("%s: err = %v, want ErrInvalidActivity", tt.name, err)
		}
	}
}

func TestActivityUnsyncedAndMarkSynced(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	for _, d := range []string{"2024-03-04", "2024-03-05", "2024-03-06"} {
		if err := repo.Save(ctx, "u1", testActivity(d)); err != nil {
			t.Fatalf("save %s: %v", d, err)
		}
	}

	unsynced, err := repo.Unsynced(ctx, "u1")
	if err != nil {
		t.Fatalf("unsynced: %v", err)
	}
	if len(unsynced) != 3 {
		t.Fatalf("unsynced count = %d, want 3", len(unsynced))
	}

	// Mark exactly two of the three.
	if err := repo.MarkSynced(ctx, "u1", []string{"2024-03-04", "2024-03-06"}); err != nil {
		t.Fatalf("mark synced: %v", err)
	}

	unsynced, err = repo.Unsynced(ctx, "u1")
	if err != nil {
		t.Fatalf("unsynced after mark: %v", err)
	}
	if len(unsynced) != 1 || unsynced[0].Date != "2024-03-05" {
		t.Errorf("unsynced after mark = %+v, want only 2024-03-05", unsynced)
	}
}

func TestActivityImportIfAbsent(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	imported := testActivity("2024-03-04")
	imported.Synced = true

	wrote, err := repo.ImportIfAbsent(ctx, "u1", imported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !wrote {
		t.Error("first import reported no write")
	}

	got, _ := repo.Get(ctx, "u1", "2024-03-04")
	if got == nil || !got.Synced {
		t.Fatalf("imported row missing or not synced: %+v", got)
	}

	// A second import of the same date is a no-op.
	again := imported
	again.Score = 10
	wrote, err = repo.ImportIfAbsent(ctx, "u1", again)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if wrote {
		t.Error("re-import overwrote an existing row")
	}
	got, _ = repo.Get(ctx, "u1", "2024-03-04")
	if got.Score != 69 {
		t.Errorf("local row altered by re-import: score = %d", got.Score)
	}
}

func TestActivityList_SortedAndNamespaced(t *testing.T) {
	repo := openTestStore(t).Activities()
	ctx := context.Background()

	for _, d := range []string{"2024-03-06", "2024-03-04", "2024-03-05"} {
		if err := repo.Save(ctx, "u1", testActivity(d)); err != nil {
			t.Fatalf("save %s: %v", d, err)
		}
	}
	if err := repo.Save(ctx, "u2", testActivity("2024-03-04")); err != nil {
		t.Fatalf("save u2: %v", err)
	}

	list, err := repo.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list count = %d, want 3 (accounts must not mix)", len(list))
	}
	want := []string{"2024-03-04", "2024-03-05", "2024-03-06"}
	for i, d := range want {
		if list[i].Date != d {
			t.Errorf("list[%d].Date = %s, want %s", i, list[i].Date, d)
		}
	}
}
