package media

import "testing"

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		parts   []string
		want    Selection
		wantErr bool
	}{
		{
			name:  "movie pair",
			parts: []string{"Джуманджі", "https://ashdi.vip/vod/555"},
			want:  Selection{PlayerURL: "https://ashdi.vip/vod/555"},
		},
		{
			name:  "episode triple",
			parts: []string{"Сезон 1", "Серія 3", "https://ashdi.vip/serial/777"},
			want: Selection{
				SeasonTitle:  "Сезон 1",
				EpisodeTitle: "Серія 3",
				PlayerURL:    "https://ashdi.vip/serial/777",
			},
		},
		{name: "too short", parts: []string{"only-url"}, wantErr: true},
		{name: "too long", parts: []string{"a", "b", "c", "d"}, wantErr: true},
		{name: "empty", parts: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.parts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSelection(%v) error = %v, wantErr %v", tt.parts, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSelection(%v) = %+v, want %+v", tt.parts, got, tt.want)
			}
		})
	}
}

func TestSelectionSole(t *testing.T) {
	movie := Selection{PlayerURL: "https://ashdi.vip/vod/555"}
	if !movie.Sole() {
		t.Error("movie selection should be sole")
	}

	episode := Selection{SeasonTitle: "Сезон 1", EpisodeTitle: "Серія 1", PlayerURL: "https://ashdi.vip/serial/777"}
	if episode.Sole() {
		t.Error("episode selection should not be sole")
	}
}
