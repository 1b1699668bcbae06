package extract

import (
	"strings"

	"klon/internal/media"
)

// ExtractSubtitle scans player page text for the subtitle payload, which has
// the literal shape [Label]URL. A nil return means no subtitle; that is a
// defined outcome, never an error. A bracketed label with an empty URL is
// also treated as absent.
func ExtractSubtitle(playerHTML string) *media.Subtitle {
	payload, err := SubtitlePayload(playerHTML)
	if err != nil {
		return nil
	}

	open := strings.LastIndex(payload, "[")
	if open < 0 {
		return nil
	}
	end := strings.Index(payload[open:], "]")
	if end < 0 {
		return nil
	}

	label := payload[open+1 : open+end]
	url := payload[open+end+1:]
	if url == "" {
		return nil
	}

	return &media.Subtitle{Language: label, URL: url}
}
