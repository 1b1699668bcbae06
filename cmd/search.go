package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"klon/internal/download"
	"klon/internal/history"
	"klon/internal/media"
	"klon/internal/player"
	"klon/internal/provider"
	"klon/internal/subtitle"
	"klon/internal/ui"
)

// searchRun is the default command: klon <query>
func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if query == "" {
		// Prompt for query via fzf
		var err error
		query, err = ui.Input("Search")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}

	logg.Debug("searching", "query", query)

	p := provider.New(cfg.Base, logg)
	return playFlow(p, query)
}

// playFlow handles the full search -> select -> play flow.
func playFlow(p *provider.KlonTV, query string) error {
	ctx := context.Background()

	results := p.Search(ctx, query)
	if len(results) == 0 {
		return fmt.Errorf("no results for %q", query)
	}

	items := make([]string, len(results))
	for i, r := range results {
		items[i] = r.Title
	}

	idx, err := ui.Select("Select", query, items)
	if err != nil {
		return err
	}

	selected := results[idx]
	logg.Debug("selected", "title", selected.Title, "url", selected.URL)

	return resolveAndPlay(ctx, p, selected.URL)
}

// resolveAndPlay fetches the content page, walks the dub/season/episode
// pickers for series, and hands off to playSelection.
func resolveAndPlay(ctx context.Context, p *provider.KlonTV, pageURL string) error {
	detail, err := p.GetDetails(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("getting details: %w", err)
	}

	sel := media.Selection{PlayerURL: detail.PlayerURL}
	displayTitle := detail.Title

	if !detail.IsMovie {
		dubs := detail.Episodes
		if len(dubs) == 0 {
			return fmt.Errorf("no episodes found for %q", detail.Title)
		}

		dubIdx := 0
		if len(dubs) > 1 {
			dubItems := make([]string, len(dubs))
			for i, d := range dubs {
				dubItems[i] = d.Title
			}
			dubIdx, err = ui.Select("Dub", detail.Title, dubItems)
			if err != nil {
				return err
			}
		}
		logg.Debug("dub", "title", dubs[dubIdx].Title)

		seasons := dubs[dubIdx].Seasons
		if len(seasons) == 0 {
			return fmt.Errorf("no seasons found for %q", detail.Title)
		}

		seasonIdx := 0
		if len(seasons) > 1 {
			seasonItems := make([]string, len(seasons))
			for i, s := range seasons {
				seasonItems[i] = s.Title
			}
			seasonIdx, err = ui.Select("Season", detail.Title, seasonItems)
			if err != nil {
				return err
			}
		}
		season := seasons[seasonIdx]
		logg.Debug("season", "title", season.Title)

		if len(season.Episodes) == 0 {
			return fmt.Errorf("no episodes found in %q", season.Title)
		}

		episodeItems := make([]string, len(season.Episodes))
		for i, ep := range season.Episodes {
			episodeItems[i] = ep.Title
		}
		episodeIdx, err := ui.Select("Episode", fmt.Sprintf("%s: %s", detail.Title, season.Title), episodeItems)
		if err != nil {
			return err
		}
		episode := season.Episodes[episodeIdx]
		logg.Debug("episode", "title", episode.Title)

		sel.SeasonTitle = season.Title
		sel.EpisodeTitle = episode.Title
		displayTitle = fmt.Sprintf("%s: %s, %s", detail.Title, season.Title, episode.Title)
	}

	return playSelection(ctx, p, pageURL, detail.Title, displayTitle, sel)
}

// downloadDir picks the download target: --output when given, otherwise the
// configured download_dir with ~ expanded.
func downloadDir() (string, error) {
	if flagOutput != "" {
		return flagOutput, nil
	}
	return cfg.ExpandDownloadDir()
}

// playSelection resolves the selection to a stream, then plays, downloads,
// or prints it depending on the flags.
func playSelection(ctx context.Context, p *provider.KlonTV, pageURL, title, displayTitle string, sel media.Selection) error {
	stream, err := p.GetStreams(ctx, sel)
	if err != nil {
		if provider.IsSelectionNotFound(err) {
			return fmt.Errorf("selection no longer available: %w", err)
		}
		return fmt.Errorf("resolving stream: %w", err)
	}

	source := &stream.Sources[0]
	logg.Debug("stream", "url", source.URL)

	// JSON output mode
	if flagJSON {
		out := map[string]interface{}{
			"title":     displayTitle,
			"url":       source.URL,
			"quality":   source.Quality,
			"type":      source.Type,
			"headers":   source.Headers,
			"subtitles": stream.Subtitles,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	// Handle subtitles
	var subFile string
	if !flagNoSubs && len(stream.Subtitles) > 0 {
		best := subtitle.BestMatch(stream.Subtitles, cfg.SubsLanguage)
		if best != nil {
			tmpDir, err := subtitle.NewTempDir()
			if err == nil {
				defer tmpDir.Cleanup()
				subFile, err = tmpDir.Download(*best)
				if err != nil {
					logg.Warn("subtitle download failed", "err", err)
					subFile = "" // Continue without subs
				} else {
					logg.Debug("subtitle file", "path", subFile)
				}
			}
		}
	}

	// Download mode
	if flagDownload {
		dir, err := downloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}
		outputPath, err := download.Download(source, displayTitle, dir, subFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	// Play
	var store *history.Store
	if cfg.History {
		store, err = history.Open()
		if err != nil {
			logg.Warn("opening history", "err", err)
		} else {
			defer store.Close()
		}
	}

	var startPos float64
	if flagContinue && store != nil {
		pos, err := store.Position(pageURL, sel.SeasonTitle, sel.EpisodeTitle)
		if err != nil {
			logg.Warn("reading history position", "err", err)
		} else if pos > 0 {
			startPos = pos
			logg.Debug("resuming", "position", startPos)
		}
	}

	pl := player.New(cfg.Player)
	if !pl.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	lastPos, duration, err := pl.Play(source, displayTitle, startPos, subFile)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	// Save to history
	if store != nil {
		entry := media.HistoryEntry{
			URL:          pageURL,
			Title:        title,
			PlayerURL:    sel.PlayerURL,
			SeasonTitle:  sel.SeasonTitle,
			EpisodeTitle: sel.EpisodeTitle,
			Position:     lastPos,
			Duration:     duration,
		}
		if err := store.Save(entry); err != nil {
			logg.Warn("saving history", "err", err)
		}
	}

	return nil
}
