package provider

import "strings"

// seriesPathMarker appears in player URLs of multi-episode titles.
const seriesPathMarker = "/serial/"

// Tag literals the site uses for multi-episode content.
var seriesTags = []string{"Серіали", "Мультсеріали"}

// isSeries classifies a title. A title is a series if its player URL path
// contains the series marker, or its tags include one of the known series
// tag literals; everything else is a movie.
func isSeries(playerURL string, tags []string) bool {
	if strings.Contains(playerURL, seriesPathMarker) {
		return true
	}
	for _, tag := range tags {
		for _, marker := range seriesTags {
			if tag == marker {
				return true
			}
		}
	}
	return false
}
