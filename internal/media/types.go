// Package media defines shared types for the klon application.
package media

import "fmt"

// SearchResult represents a single search result from the catalog site.
type SearchResult struct {
	Title     string // Display title
	URL       string // Full URL to the content page
	PosterURL string // Poster image, may be empty
}

// ContentDetail holds the metadata scraped from a content page.
// Episodes is populated only for series; movies never carry a tree.
type ContentDetail struct {
	Title     string
	PosterURL string
	Plot      string
	Year      string
	Tags      []string
	PlayerURL string
	IsMovie   bool
	Episodes  []Dub
}

// Dub is a voice-over track grouping seasons for one series.
type Dub struct {
	Title   string
	Seasons []Season
}

// Season groups episodes under a dub.
type Season struct {
	Title    string
	Episodes []Episode
}

// Episode is a selectable leaf of the tree. File is the playable media URL
// and is always non-empty after normalization.
type Episode struct {
	Title string
	File  string
}

// Selection identifies what the caller wants to resolve. An empty
// season/episode pair means the sole item (movie case).
type Selection struct {
	SeasonTitle  string
	EpisodeTitle string
	PlayerURL    string
}

// Sole reports whether the selection targets the single-source case.
func (s Selection) Sole() bool {
	return s.SeasonTitle == "" && s.EpisodeTitle == ""
}

// ParseSelection decodes a serialized selection: a list of 2 strings
// [title, playerURL] for a movie, or 3 strings [seasonTitle, episodeTitle,
// playerURL] for an episode. The player URL is always the final element.
func ParseSelection(parts []string) (Selection, error) {
	switch len(parts) {
	case 2:
		return Selection{PlayerURL: parts[1]}, nil
	case 3:
		return Selection{
			SeasonTitle:  parts[0],
			EpisodeTitle: parts[1],
			PlayerURL:    parts[2],
		}, nil
	default:
		return Selection{}, fmt.Errorf("selection must have 2 or 3 elements, got %d", len(parts))
	}
}

// Source is one playable stream location.
type Source struct {
	URL     string
	Quality string // always "auto"; the site exposes no variants
	Type    string // "hls"
	Headers map[string]string
}

// Subtitle represents a subtitle track.
type Subtitle struct {
	Language string
	URL      string
}

// StreamResult is the final output of a resolution request.
type StreamResult struct {
	Sources   []Source
	Subtitles []Subtitle
}

// HistoryEntry represents a single entry in the watch history. Season and
// episode are identified by title, matching the selection keys the site
// exposes (it has no stable numeric IDs).
type HistoryEntry struct {
	URL          string  // Content page URL
	Title        string  // Display title
	PlayerURL    string  // Player embed URL at last watch
	SeasonTitle  string  // Empty for movies
	EpisodeTitle string  // Empty for movies
	Position     float64 // Last playback position in seconds
	Duration     float64 // Total duration in seconds
}
