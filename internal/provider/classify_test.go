package provider

import "testing"

func TestIsSeries(t *testing.T) {
	tests := []struct {
		name      string
		playerURL string
		tags      []string
		want      bool
	}{
		{
			name:      "serial path marker",
			playerURL: "https://ashdi.vip/serial/777",
			tags:      nil,
			want:      true,
		},
		{
			name:      "path marker overrides movie tags",
			playerURL: "https://ashdi.vip/serial/777",
			tags:      []string{"Фільми"},
			want:      true,
		},
		{
			name:      "series tag",
			playerURL: "https://ashdi.vip/vod/555",
			tags:      []string{"Фантастика", "Серіали"},
			want:      true,
		},
		{
			name:      "animated series tag",
			playerURL: "https://ashdi.vip/vod/555",
			tags:      []string{"Мультсеріали"},
			want:      true,
		},
		{
			name:      "neither marker nor tags",
			playerURL: "https://ashdi.vip/vod/555",
			tags:      []string{"Фільми", "Бойовики"},
			want:      false,
		},
		{
			name:      "empty everything",
			playerURL: "",
			tags:      nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSeries(tt.playerURL, tt.tags); got != tt.want {
				t.Errorf("isSeries(%q, %v) = %v, want %v", tt.playerURL, tt.tags, got, tt.want)
			}
		})
	}
}
