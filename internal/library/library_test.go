package library

import (
	"context"
	"errors"
	"testing"
	"time"
)

// createTestLibrary creates an in-memory SQLite library for testing
func createTestLibrary(t *testing.T) *Library {
	t.Helper()

	lib, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test library: %v", err)
	}

	t.Cleanup(func() {
		_ = lib.Close()
	})

	return lib
}

func TestLibrary_SaveAndGet(t *testing.T) {
	lib := createTestLibrary(t)
	ctx := context.Background()

	album := SavedAlbum{
		ID:     "al1",
		Name:   "  OK Computer  ",
		Artist: "Radiohead",
		Notes:  "desert island pick",
	}
	if err := lib.Save(ctx, album); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := lib.Get(ctx, "al1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "OK Computer" {
		t.Errorf("name = %q, want trimmed %q", got.Name, "OK Computer")
	}
	if got.Artist != "Radiohead" || got.Notes != "desert island pick" {
		t.Errorf("unexpected album: %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}
}

func TestLibrary_SaveUpsertsByID(t *testing.T) {
	lib := createTestLibrary(t)
	ctx := context.Background()

	if err := lib.Save(ctx, SavedAlbum{ID: "al1", Name: "Kid A", Artist: "Radiohead"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := lib.Save(ctx, SavedAlbum{ID: "al1", Name: "Kid A (remaster)", Artist: "Radiohead", Notes: "updated"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	count, err := lib.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after upsert", count)
	}

	got, err := lib.Get(ctx, "al1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Kid A (remaster)" || got.Notes != "updated" {
		t.Errorf("upsert did not replace fields: %+v", got)
	}
}

func TestLibrary_Validation(t *testing.T) {
	lib := createTestLibrary(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		album SavedAlbum
	}{
		{name: "missing ID", album: SavedAlbum{Name: "x", Artist: "y"}},
		{name: "blank name", album: SavedAlbum{ID: "a", Name: "   ", Artist: "y"}},
		{name: "blank artist", album: SavedAlbum{ID: "a", Name: "x", Artist: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := lib.Save(ctx, tt.album); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if count, _ := lib.Count(ctx); count != 0 {
		t.Errorf("count = %d, want 0 after rejected saves", count)
	}
}

func TestLibrary_ListNewestFirst(t *testing.T) {
	lib := createTestLibrary(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	albums := []SavedAlbum{
		{ID: "al1", Name: "First", Artist: "A", SavedAt: base},
		{ID: "al2", Name: "Second", Artist: "B", SavedAt: base.Add(time.Minute)},
		{ID: "al3", Name: "Third", Artist: "C", SavedAt: base.Add(2 * time.Minute)},
	}
	for _, a := range albums {
		if err := lib.Save(ctx, a); err != nil {
			t.Fatalf("Save %s failed: %v", a.ID, err)
		}
	}

	list, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"al3", "al2", "al1"} {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestLibrary_Remove(t *testing.T) {
	lib := createTestLibrary(t)
	ctx := context.Background()

	if err := lib.Save(ctx, SavedAlbum{ID: "al1", Name: "x", Artist: "y"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := lib.Remove(ctx, "al1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := lib.Get(ctx, "al1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after remove = %v, want ErrNotFound", err)
	}
	if err := lib.Remove(ctx, "al1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove = %v, want ErrNotFound", err)
	}
}
