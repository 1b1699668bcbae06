package extract

import (
	"errors"
	"reflect"
	"testing"

	"klon/internal/media"
)

const samplePayload = `[
  {"title": "UA", "folder": [
    {"title": "Season 1", "folder": [
      {"title": "Episode 1", "file": "https://cdn.example/ua/s1e1.m3u8"},
      {"title": "Episode 2", "file": "https://cdn.example/ua/s1e2.m3u8"}
    ]},
    {"title": "Season 2", "folder": [
      {"title": "Episode 1", "file": "https://cdn.example/ua/s2e1.m3u8"}
    ]}
  ]},
  {"title": "Original", "folder": [
    {"title": "Season 1", "folder": [
      {"title": "Episode 1", "file": "https://cdn.example/org/s1e1.m3u8"}
    ]}
  ]}
]`

func TestNormalizeTree(t *testing.T) {
	dubs, err := NormalizeTree(samplePayload)
	if err != nil {
		t.Fatalf("NormalizeTree() error: %v", err)
	}

	if len(dubs) != 2 {
		t.Fatalf("expected 2 dubs, got %d", len(dubs))
	}
	if dubs[0].Title != "UA" || dubs[1].Title != "Original" {
		t.Errorf("dub titles = %q, %q", dubs[0].Title, dubs[1].Title)
	}
	if len(dubs[0].Seasons) != 2 {
		t.Fatalf("expected 2 seasons in UA, got %d", len(dubs[0].Seasons))
	}
	if len(dubs[0].Seasons[0].Episodes) != 2 {
		t.Errorf("expected 2 episodes in UA/Season 1, got %d", len(dubs[0].Seasons[0].Episodes))
	}

	ep := dubs[0].Seasons[1].Episodes[0]
	if ep.Title != "Episode 1" || ep.File != "https://cdn.example/ua/s2e1.m3u8" {
		t.Errorf("UA/Season 2 episode = %+v", ep)
	}
}

func TestNormalizeTreeTrailingComma(t *testing.T) {
	clean, err := NormalizeTree(samplePayload)
	if err != nil {
		t.Fatalf("NormalizeTree(clean) error: %v", err)
	}

	dangling, err := NormalizeTree(samplePayload + ",")
	if err != nil {
		t.Fatalf("NormalizeTree(dangling) error: %v", err)
	}

	if !reflect.DeepEqual(clean, dangling) {
		t.Error("trailing comma changed the normalized tree")
	}
}

func TestNormalizeTreeDropsInvalidNodes(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantDubs int
		check    func(t *testing.T, dubs []media.Dub)
	}{
		{
			name:     "episode without file is dropped",
			payload:  `[{"title":"UA","folder":[{"title":"S1","folder":[{"title":"E1"},{"title":"E2","file":"https://x/e2"}]}]}]`,
			wantDubs: 1,
			check: func(t *testing.T, dubs []media.Dub) {
				eps := dubs[0].Seasons[0].Episodes
				if len(eps) != 1 || eps[0].Title != "E2" {
					t.Errorf("episodes = %+v, want only E2", eps)
				}
			},
		},
		{
			name:     "dub without title is dropped",
			payload:  `[{"folder":[]},{"title":"UA","folder":[]}]`,
			wantDubs: 1,
		},
		{
			name:     "season without title is dropped",
			payload:  `[{"title":"UA","folder":[{"folder":[{"title":"E1","file":"https://x/e1"}]}]}]`,
			wantDubs: 1,
			check: func(t *testing.T, dubs []media.Dub) {
				if len(dubs[0].Seasons) != 0 {
					t.Errorf("seasons = %+v, want none", dubs[0].Seasons)
				}
			},
		},
		{
			name:     "non-object nodes are skipped",
			payload:  `[42, "text", {"title":"UA","folder":["junk",{"title":"S1","folder":[null]}]}]`,
			wantDubs: 1,
		},
		{
			name:     "wrong folder type is tolerated",
			payload:  `[{"title":"UA","folder":"not-a-list"}]`,
			wantDubs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dubs, err := NormalizeTree(tt.payload)
			if err != nil {
				t.Fatalf("NormalizeTree() error: %v", err)
			}
			if len(dubs) != tt.wantDubs {
				t.Fatalf("got %d dubs, want %d", len(dubs), tt.wantDubs)
			}
			if tt.check != nil {
				tt.check(t, dubs)
			}
		})
	}
}

func TestNormalizeTreeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t "},
		{"lone comma", ","},
		{"not JSON", "{{{"},
		{"bare URL", "https://cdn.example/movie.m3u8"},
		{"double trailing comma", `[{"title":"UA","folder":[]}],,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeTree(tt.payload); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("NormalizeTree(%q) error = %v, want ErrInvalidPayload", tt.payload, err)
			}
		})
	}
}
