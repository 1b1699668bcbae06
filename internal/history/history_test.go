package history

import (
	"path/filepath"
	"testing"

	"klon/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndList(t *testing.T) {
	s := openTestStore(t)

	entry := media.HistoryEntry{
		URL:          "https://klon.fun/100-test.html",
		Title:        "Тестовий серіал",
		PlayerURL:    "https://ashdi.vip/serial/777",
		SeasonTitle:  "Season 1",
		EpisodeTitle: "Episode 1",
		Position:     1234,
		Duration:     5678,
	}

	if err := s.Save(entry); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.URL != entry.URL || got.Title != entry.Title {
		t.Errorf("got %+v", got)
	}
	if got.SeasonTitle != "Season 1" || got.EpisodeTitle != "Episode 1" {
		t.Errorf("title pair = %q/%q", got.SeasonTitle, got.EpisodeTitle)
	}
	if got.Position != 1234 {
		t.Errorf("Position = %f, want 1234", got.Position)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	s := openTestStore(t)

	entry := media.HistoryEntry{
		URL:      "https://klon.fun/55-movie.html",
		Title:    "Фільм",
		Position: 100,
	}
	if err := s.Save(entry); err != nil {
		t.Fatal(err)
	}

	entry.Position = 500
	if err := s.Save(entry); err != nil {
		t.Fatal(err)
	}

	entries, _ := s.List()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after update, got %d", len(entries))
	}
	if entries[0].Position != 500 {
		t.Errorf("position = %f, want 500", entries[0].Position)
	}
}

func TestEpisodesAreSeparateEntries(t *testing.T) {
	s := openTestStore(t)

	url := "https://klon.fun/100-test.html"
	s.Save(media.HistoryEntry{URL: url, Title: "T", SeasonTitle: "Season 1", EpisodeTitle: "Episode 1"})
	s.Save(media.HistoryEntry{URL: url, Title: "T", SeasonTitle: "Season 1", EpisodeTitle: "Episode 2"})

	entries, _ := s.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)

	s.Save(media.HistoryEntry{URL: "https://klon.fun/a.html", Title: "A"})
	s.Save(media.HistoryEntry{URL: "https://klon.fun/b.html", Title: "B"})

	if err := s.Remove("https://klon.fun/a.html", "", ""); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	entries, _ := s.List()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", len(entries))
	}
	if entries[0].Title != "B" {
		t.Errorf("remaining entry = %q, want B", entries[0].Title)
	}
}

func TestPosition(t *testing.T) {
	s := openTestStore(t)

	pos, err := s.Position("https://klon.fun/none.html", "", "")
	if err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	if pos != 0 {
		t.Errorf("missing entry position = %f, want 0", pos)
	}

	s.Save(media.HistoryEntry{
		URL: "https://klon.fun/100.html", Title: "T",
		SeasonTitle: "Season 2", EpisodeTitle: "Episode 3", Position: 42,
	})

	pos, err = s.Position("https://klon.fun/100.html", "Season 2", "Episode 3")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 42 {
		t.Errorf("position = %f, want 42", pos)
	}
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.HistoryEntry{
		{Title: "Фільм", Position: 500, Duration: 1000},
		{Title: "Серіал", SeasonTitle: "Season 2", EpisodeTitle: "Episode 5"},
	}

	items := FormatForDisplay(entries)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "Фільм [50%]" {
		t.Errorf("movie display = %q", items[0])
	}
	if items[1] != "Серіал: Season 2, Episode 5" {
		t.Errorf("episode display = %q", items[1])
	}
}
