// Package extract locates and decodes the player payloads embedded in
// KlonTV page text: the quoted file/subtitle literals inside inline
// scripts, the dub/season/episode tree they carry, and the lookup that
// turns a selection into a playable URL.
package extract

import (
	"errors"
	"regexp"
)

// ErrPayloadNotFound is returned when a tagged payload is absent from the
// page text. Many pages legitimately lack one of the two tags, so callers
// must treat this as a recoverable condition.
var ErrPayloadNotFound = errors.New("tagged payload not found in page text")

// Tag patterns, compiled once. Each matches <tag> : '<payload>' with either
// quote style; (?s) lets the payload span newlines. Matching quotes are
// required, so a payload may contain the other quote character. The literal
// must be non-empty: an empty pair of quotes is no payload, and scanning
// continues past it.
var (
	fileRe     = payloadRe("file")
	subtitleRe = payloadRe("subtitle")
)

func payloadRe(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + tag + `\s*:\s*(?:'([^']+)'|"([^"]+)")`)
}

// extractPayload returns the first tagged literal captured by re, verbatim.
// The payload may be a JSON document, a bare media URL, or a composite
// subtitle descriptor; no structural parsing happens here.
func extractPayload(text string, re *regexp.Regexp) (string, error) {
	m := re.FindStringSubmatchIndex(text)
	if m == nil {
		return "", ErrPayloadNotFound
	}
	// Group 1 is the single-quoted capture, group 2 the double-quoted one;
	// exactly one of them participated in the match.
	if m[2] >= 0 {
		return text[m[2]:m[3]], nil
	}
	return text[m[4]:m[5]], nil
}

// FilePayload extracts the file: literal from player page text.
func FilePayload(text string) (string, error) {
	return extractPayload(text, fileRe)
}

// SubtitlePayload extracts the subtitle: literal from player page text.
func SubtitlePayload(text string) (string, error) {
	return extractPayload(text, subtitleRe)
}
