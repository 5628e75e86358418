package disccache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry() Entry {
	return Entry{
		Fingerprint: "abc123",
		Label:       "SOME_MOVIE",
		Titles: []TitleSummary{
			{Title: 1, TitleSet: 1, Chapters: 12, Angles: 1, Sectors: 1500000},
			{Title: 2, TitleSet: 2, Chapters: 4, Angles: 1, Sectors: 9000},
		},
		ProbedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()

	if err := store.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("entry not found after Put")
	}
	if got.Label != "SOME_MOVIE" {
		t.Errorf("Label = %q, want SOME_MOVIE", got.Label)
	}
	if len(got.Titles) != 2 {
		t.Fatalf("Titles len = %d, want 2", len(got.Titles))
	}
	if got.Titles[1].TitleSet != 2 || got.Titles[1].Sectors != 9000 {
		t.Errorf("title 2 = %+v, want set 2 / 9000 sectors", got.Titles[1])
	}
	if !got.ProbedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("ProbedAt = %v, want stored timestamp", got.ProbedAt)
	}
}

func TestGetMissingFingerprint(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))

	_, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("found entry that was never stored")
	}
}

func TestPutReplacesTitles(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()

	if err := store.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	replacement := Entry{
		Fingerprint: "abc123",
		Label:       "SOME_MOVIE_RESCANNED",
		Titles:      []TitleSummary{{Title: 1, TitleSet: 1, Chapters: 10, Angles: 1, Sectors: 1400000}},
	}
	if err := store.Put(ctx, replacement); err != nil {
		t.Fatalf("Put replacement: %v", err)
	}

	got, ok, err := store.Get(ctx, "abc123")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got.Label != "SOME_MOVIE_RESCANNED" {
		t.Errorf("Label = %q, want replacement label", got.Label)
	}
	if len(got.Titles) != 1 {
		t.Errorf("Titles len = %d, want 1 after replacement", len(got.Titles))
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openStore(t, path)
	_, ok, err := reopened.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if !ok {
		t.Fatal("entry lost across reopen")
	}
}

func TestForget(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	ctx := context.Background()

	if err := store.Put(ctx, sampleEntry()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Forget(ctx, "abc123"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	_, ok, err := store.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry still present after Forget")
	}
}

func TestPutRequiresFingerprint(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache.db"))
	if err := store.Put(context.Background(), Entry{}); err == nil {
		t.Fatal("expected error for empty fingerprint")
	}
}
