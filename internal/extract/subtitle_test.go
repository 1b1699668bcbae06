package extract

import "testing"

func TestExtractSubtitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantLang string
		wantURL  string
		wantNil  bool
	}{
		{
			name:     "label and url",
			html:     `Playerjs({subtitle: '[English]https://x/subs.vtt'});`,
			wantLang: "English",
			wantURL:  "https://x/subs.vtt",
		},
		{
			name:     "ukrainian label",
			html:     `subtitle: "[Ukrainian]https://cdn.example/sub.vtt"`,
			wantLang: "Ukrainian",
			wantURL:  "https://cdn.example/sub.vtt",
		},
		{
			name:    "empty url",
			html:    `subtitle: '[English]'`,
			wantNil: true,
		},
		{
			name:    "tag absent",
			html:    `file: 'https://x/a.m3u8'`,
			wantNil: true,
		},
		{
			name:    "no brackets",
			html:    `subtitle: 'https://x/subs.vtt'`,
			wantNil: true,
		},
		{
			name:    "empty payload",
			html:    `subtitle: ''`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ExtractSubtitle(tt.html)
			if tt.wantNil {
				if sub != nil {
					t.Fatalf("ExtractSubtitle() = %+v, want nil", sub)
				}
				return
			}
			if sub == nil {
				t.Fatal("ExtractSubtitle() = nil, want subtitle")
			}
			if sub.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", sub.Language, tt.wantLang)
			}
			if sub.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", sub.URL, tt.wantURL)
			}
		})
	}
}
