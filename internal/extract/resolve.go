package extract

import (
	"fmt"

	"klon/internal/media"
)

// SelectionError reports that a season/episode key has no match in an
// otherwise valid tree. It is distinct from fetch failures: the caller
// should re-search rather than retry the network.
type SelectionError struct {
	Season  string
	Episode string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("no episode %q in season %q", e.Episode, e.Season)
}

// ResolveMovie extracts the media URL from player page text. For movies the
// file payload is the URL itself, with no further deserialization.
func ResolveMovie(playerHTML string) (string, error) {
	url, err := FilePayload(playerHTML)
	if err != nil {
		return "", fmt.Errorf("no media link in player page: %w", err)
	}
	return url, nil
}

// ResolveEpisode walks the tree dub-major and returns the file of the first
// episode whose season and episode titles exactly equal the key. Season
// titles are not guaranteed unique within a dub; first match in tree order
// wins by definition.
func ResolveEpisode(dubs []media.Dub, seasonTitle, episodeTitle string) (string, error) {
	for _, dub := range dubs {
		for _, season := range dub.Seasons {
			if season.Title != seasonTitle {
				continue
			}
			for _, ep := range season.Episodes {
				if ep.Title == episodeTitle {
					return ep.File, nil
				}
			}
		}
	}
	return "", &SelectionError{Season: seasonTitle, Episode: episodeTitle}
}
