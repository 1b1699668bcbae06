package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"klon/internal/history"
	"klon/internal/media"
	"klon/internal/provider"
	"klon/internal/ui"
)

var flagHistoryRemove bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Resume from watch history",
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagHistoryRemove, "remove", "r", false, "Remove the selected entry instead of resuming")
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	idx, err := ui.Select("History", "", items)
	if err != nil {
		return err
	}

	selected := entries[idx]

	if flagHistoryRemove {
		if err := store.Remove(selected.URL, selected.SeasonTitle, selected.EpisodeTitle); err != nil {
			return fmt.Errorf("removing history entry: %w", err)
		}
		fmt.Printf("Removed %s from history.\n", selected.Title)
		return nil
	}

	logg.Debug("resuming", "title", selected.Title, "url", selected.URL)

	ctx := context.Background()
	p := provider.New(cfg.Base, logg)

	// Re-fetch the page: the embed URL may have moved since last watch.
	detail, err := p.GetDetails(ctx, selected.URL)
	if err != nil {
		return fmt.Errorf("getting details for %q: %w", selected.Title, err)
	}

	sel := media.Selection{
		SeasonTitle:  selected.SeasonTitle,
		EpisodeTitle: selected.EpisodeTitle,
		PlayerURL:    detail.PlayerURL,
	}

	displayTitle := detail.Title
	if !sel.Sole() {
		displayTitle = fmt.Sprintf("%s: %s, %s", detail.Title, sel.SeasonTitle, sel.EpisodeTitle)
	}

	flagContinue = true
	err = playSelection(ctx, p, selected.URL, detail.Title, displayTitle, sel)
	if err != nil && provider.IsSelectionNotFound(err) {
		// The saved episode vanished from the tree; let the user re-pick.
		logg.Warn("saved selection gone, re-selecting", "title", selected.Title)
		return resolveAndPlay(ctx, p, selected.URL)
	}
	return err
}
