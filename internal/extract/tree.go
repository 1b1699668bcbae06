package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"klon/internal/media"
)

// ErrInvalidPayload is returned when a file payload cannot be deserialized
// as the expected dub/season/episode structure.
var ErrInvalidPayload = errors.New("payload is not a valid episode structure")

// NormalizeTree parses a file payload into the canonical Dub → Season →
// Episode tree. Source payloads occasionally carry a dangling comma before
// the closing bracket, so a single trailing comma is stripped before
// parsing; any other malformation is ErrInvalidPayload.
//
// Nodes missing a required field (title, or file for episodes) are dropped
// rather than failing the parse: a partial tree is valid output. The
// returned tree is never mutated afterwards.
func NormalizeTree(payload string) ([]media.Dub, error) {
	trimmed := strings.TrimSpace(payload)
	trimmed = strings.TrimSuffix(trimmed, ",")
	if trimmed == "" {
		return nil, ErrInvalidPayload
	}

	// The upstream structure is heterogeneous and occasionally malformed,
	// so decode into a loose value and normalize in a separate pass.
	var raw []any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var dubs []media.Dub
	for _, node := range raw {
		dub, ok := normalizeDub(node)
		if !ok {
			continue
		}
		dubs = append(dubs, dub)
	}

	return dubs, nil
}

func normalizeDub(node any) (media.Dub, bool) {
	obj, ok := node.(map[string]any)
	if !ok {
		return media.Dub{}, false
	}

	title := stringField(obj, "title")
	if title == "" {
		return media.Dub{}, false
	}

	dub := media.Dub{Title: title}
	for _, child := range listField(obj, "folder") {
		if season, ok := normalizeSeason(child); ok {
			dub.Seasons = append(dub.Seasons, season)
		}
	}

	return dub, true
}

func normalizeSeason(node any) (media.Season, bool) {
	obj, ok := node.(map[string]any)
	if !ok {
		return media.Season{}, false
	}

	title := stringField(obj, "title")
	if title == "" {
		return media.Season{}, false
	}

	season := media.Season{Title: title}
	for _, child := range listField(obj, "folder") {
		if ep, ok := normalizeEpisode(child); ok {
			season.Episodes = append(season.Episodes, ep)
		}
	}

	return season, true
}

func normalizeEpisode(node any) (media.Episode, bool) {
	obj, ok := node.(map[string]any)
	if !ok {
		return media.Episode{}, false
	}

	title := stringField(obj, "title")
	file := stringField(obj, "file")
	// An episode without a file cannot be a resolution target.
	if title == "" || file == "" {
		return media.Episode{}, false
	}

	return media.Episode{Title: title, File: file}, true
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func listField(obj map[string]any, key string) []any {
	l, _ := obj[key].([]any)
	return l
}
