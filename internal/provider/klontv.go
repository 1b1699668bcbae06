// Package provider implements the KlonTV content source: searching the
// catalog, loading content details, and resolving selections into playable
// streams.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"klon/internal/extract"
	"klon/internal/httputil"
	"klon/internal/media"
)

// DefaultBase is the KlonTV host.
const DefaultBase = "klon.fun"

// Headers the upstream media host requires on every stream request.
const (
	streamAccept  = "application/vnd.apple.mpegurl, video/mp4, */*"
	streamReferer = "https://tortuga.wtf/"
)

// KlonTV resolves KlonTV catalog pages into playable streams. The only
// state is read-only configuration; independent resolution requests may run
// concurrently on one value.
type KlonTV struct {
	base   string // e.g., "klon.fun"
	client *http.Client
	log    *log.Logger
}

// New creates a KlonTV provider for the given host.
func New(base string, logger *log.Logger) *KlonTV {
	return NewWithClient(base, httputil.NewClient(), logger)
}

// NewWithClient creates a provider with a caller-supplied HTTP client.
func NewWithClient(base string, client *http.Client, logger *log.Logger) *KlonTV {
	return &KlonTV{
		base:   base,
		client: client,
		log:    logger,
	}
}

func (k *KlonTV) baseURL() string {
	return "https://" + k.base
}

// StreamHeaders returns the headers every resolved source carries.
func StreamHeaders() map[string]string {
	return map[string]string{
		"Accept":     streamAccept,
		"Referer":    streamReferer,
		"User-Agent": httputil.UserAgent,
	}
}

// Search queries the catalog with the site's search form. Failures degrade
// to an empty result list; the error is logged, not propagated.
func (k *KlonTV) Search(ctx context.Context, query string) []media.SearchResult {
	k.log.Debug("searching", "query", query)

	form := url.Values{
		"do":        {"search"},
		"subaction": {"search"},
		"story":     {httputil.CollapseQuery(query)},
	}
	html, err := httputil.PostForm(ctx, k.client, k.baseURL(), form.Encode(), nil)
	if err != nil {
		k.log.Warn("search failed", "query", query, "err", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		k.log.Warn("search page unparsable", "err", err)
		return nil
	}

	results := parseSearchResults(doc)
	for i := range results {
		results[i].URL = httputil.ResolveRef(k.baseURL(), results[i].URL)
	}

	k.log.Debug("search done", "results", len(results))
	return results
}

// GetDetails loads a content page, classifies it, and for series builds the
// episode tree from the player page. A player payload that is missing or
// unparsable degrades to a detail with zero episodes; the metadata is still
// useful without them. Fetch failures propagate.
func (k *KlonTV) GetDetails(ctx context.Context, pageURL string) (*media.ContentDetail, error) {
	k.log.Debug("loading content", "url", pageURL)

	html, err := httputil.GetText(ctx, k.client, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching content page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing content page: %w", err)
	}

	detail := parseDetailPage(doc)
	if detail.PlayerURL == "" {
		return nil, fmt.Errorf("player URL not found on %s", pageURL)
	}

	detail.IsMovie = !isSeries(detail.PlayerURL, detail.Tags)
	if detail.IsMovie {
		return detail, nil
	}

	dubs, err := k.loadTree(ctx, detail.PlayerURL)
	if err != nil {
		return nil, err
	}
	detail.Episodes = dubs

	return detail, nil
}

// loadTree fetches the player page and normalizes its embedded episode
// structure. Extraction and parse failures are recovered as an empty tree;
// only transport failures surface as errors.
func (k *KlonTV) loadTree(ctx context.Context, playerURL string) ([]media.Dub, error) {
	html, err := httputil.GetText(ctx, k.client, httputil.StripMultivoice(playerURL), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching player page: %w", err)
	}

	payload, err := extract.FilePayload(html)
	if err != nil {
		k.log.Warn("player payload missing, content loads without episodes", "url", playerURL)
		return nil, nil
	}

	dubs, err := extract.NormalizeTree(payload)
	if err != nil {
		k.log.Warn("player payload unparsable, content loads without episodes", "url", playerURL, "err", err)
		return nil, nil
	}

	return dubs, nil
}

// GetStreams resolves a selection into a playable stream. The player page
// is fetched fresh; details and streams are independent entry points with
// different lifetimes, nothing is cached between them.
func (k *KlonTV) GetStreams(ctx context.Context, sel media.Selection) (*media.StreamResult, error) {
	k.log.Debug("resolving streams", "player", sel.PlayerURL, "season", sel.SeasonTitle, "episode", sel.EpisodeTitle)

	html, err := httputil.GetText(ctx, k.client, httputil.StripMultivoice(sel.PlayerURL), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching player page: %w", err)
	}

	var mediaURL string
	if sel.Sole() {
		mediaURL, err = extract.ResolveMovie(html)
		if err != nil {
			return nil, err
		}
	} else {
		payload, err := extract.FilePayload(html)
		if err != nil {
			return nil, fmt.Errorf("no episode structure in player page: %w", err)
		}
		dubs, err := extract.NormalizeTree(payload)
		if err != nil {
			return nil, err
		}
		mediaURL, err = extract.ResolveEpisode(dubs, sel.SeasonTitle, sel.EpisodeTitle)
		if err != nil {
			return nil, err
		}
	}

	result := &media.StreamResult{
		Sources: []media.Source{{
			URL:     mediaURL,
			Quality: "auto",
			Type:    "hls",
			Headers: StreamHeaders(),
		}},
	}

	if sub := extract.ExtractSubtitle(html); sub != nil {
		result.Subtitles = append(result.Subtitles, *sub)
	}

	k.log.Debug("resolved", "url", mediaURL, "subtitles", len(result.Subtitles))
	return result, nil
}

// IsSelectionNotFound reports whether err means the requested season and
// episode do not exist in the tree, as opposed to a transport failure.
func IsSelectionNotFound(err error) bool {
	var selErr *extract.SelectionError
	return errors.As(err, &selErr)
}
