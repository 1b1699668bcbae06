package provider

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"klon/internal/media"
)

// parseSearchResults extracts search results from a search response page.
func parseSearchResults(doc *goquery.Document) []media.SearchResult {
	var results []media.SearchResult

	doc.Find(".short-news__slide-item").Each(func(_ int, s *goquery.Selection) {
		result := media.SearchResult{}

		link := s.Find(".card-link__style")
		result.Title = strings.TrimSpace(link.Text())
		result.URL, _ = link.Attr("href")

		poster := s.Find(".card-poster__img")
		result.PosterURL, _ = poster.Attr("data-src")
		if result.PosterURL == "" {
			result.PosterURL, _ = poster.Attr("src")
		}

		if result.Title != "" && result.URL != "" {
			results = append(results, result)
		}
	})

	return results
}

// jsonLD is the subset of the detail page's ld+json block we consume.
type jsonLD struct {
	Name          string `json:"name"`
	Image         string `json:"image"`
	Description   string `json:"description"`
	DatePublished string `json:"datePublished"`
}

// parseDetailPage extracts content metadata from a content page: title,
// poster and plot from the JSON-LD block, the player iframe location, and
// the genre tags that feed classification.
func parseDetailPage(doc *goquery.Document) *media.ContentDetail {
	detail := &media.ContentDetail{}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var ld jsonLD
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return true // skip malformed blocks, keep looking
		}
		if ld.Name == "" {
			return true
		}
		detail.Title = ld.Name
		detail.PosterURL = ld.Image
		detail.Plot = ld.Description
		detail.Year = yearOf(ld.DatePublished)
		return false
	})

	iframe := doc.Find("div.film-player iframe")
	detail.PlayerURL, _ = iframe.Attr("data-src")
	if detail.PlayerURL == "" {
		detail.PlayerURL, _ = iframe.Attr("src")
	}

	doc.Find(".table-info__link").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			detail.Tags = append(detail.Tags, tag)
		}
	})

	if detail.Title == "" {
		detail.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	return detail
}

// yearOf takes the leading year from a JSON-LD datePublished value.
func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
