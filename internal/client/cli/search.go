package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// Search asks for a title, lists matches and shows the deals of the chosen
// one. The search term is logged before results are known; the selection is
// logged only when a listed game is picked.
func (a *App) Search(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter game title to search", a.out)
	if err != nil {
		return err
	}

	if err := a.historyService.LogSearch(ctx, a.userName, title); err != nil {
		a.log.Warn(ctx, "search not recorded", "email", a.userName, "error", err)
	}

	games, err := a.catalog.SearchTitles(ctx, title)
	if err != nil {
		a.printf("Error searching for game: %v\n", err)
		a.log.Warn(ctx, "catalog search failed", "title", title, "error", err)
	}
	if len(games) == 0 {
		a.println("No games found.")
		return nil
	}

	a.println("\nFound games:")
	for i, g := range games {
		a.printf("%d. %s\n", i+1, g.External)
	}

	choice, err := getSimpleText(a.reader, "Select a game (enter number)", a.out)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(choice)
	if err != nil {
		a.println("Please enter a valid number.")
		return nil
	}
	if n < 1 || n > len(games) {
		a.println("Invalid selection.")
		return nil
	}

	game := games[n-1]
	if err := a.historyService.LogSelection(ctx, a.userName, game.External); err != nil {
		a.log.Warn(ctx, "selection not recorded", "email", a.userName, "error", err)
	}

	a.showDeals(ctx, game.GameID)
	return nil
}

// lookupStoreNames fetches the store directory once. Failures leave it
// unresolved so that the next listing tries again.
func (a *App) lookupStoreNames(ctx context.Context) map[string]string {
	if a.storeNames != nil {
		return a.storeNames
	}
	names, err := a.catalog.StoreNames(ctx)
	if err != nil {
		a.log.Warn(ctx, "store names unavailable", "error", err)
		return map[string]string{}
	}
	a.storeNames = names
	return names
}

func (a *App) showDeals(ctx context.Context, gameID string) {
	deals, err := a.catalog.FetchDeals(ctx, gameID)
	if err != nil || deals == nil {
		if err != nil {
			a.log.Warn(ctx, "fetch deals failed", "game_id", gameID, "error", err)
		}
		a.println("Could not fetch game details.")
		return
	}

	stores := a.lookupStoreNames(ctx)

	a.printf("\nGame: %s\n", deals.Info.Title)
	for _, d := range deals.Deals {
		name, ok := stores[d.StoreID]
		if !ok {
			name = "Store " + d.StoreID
		}
		a.printf("\nStore: %s\n", name)
		a.printf("Price: $%s\n", d.Price)
		a.printf("Retail Price: $%s\n", d.RetailPrice)
		if pct, ok := d.SavingsPercent(); ok {
			a.printf("Savings: %.2f%%\n", pct)
		} else {
			a.println("Savings: Not available")
		}
	}
}

// ShowHistory prints the logged-in user's activity, oldest first.
func (a *App) ShowHistory(ctx context.Context) error {
	entries, err := a.historyService.History(ctx, a.userName)
	if err != nil {
		a.reportError(ctx, "history", err)
		return err
	}
	if len(entries) == 0 {
		a.println("\nNo search history found.")
		return nil
	}

	a.println("\nYour search history:")
	for _, e := range entries {
		a.printf("Time: %s\n", formatTimestamp(e))
		if e.IsSearch() {
			a.printf("Searched: %s\n", e.SearchTerm)
		}
		if e.IsSelection() {
			a.printf("Selected: %s\n", e.SelectedGame)
		}
		a.println("---")
	}
	return nil
}

func formatTimestamp(e models.HistoryEntry) string {
	if e.Timestamp.IsZero() {
		return "unknown"
	}
	return e.Timestamp.In(time.Local).Format(historyTimeLayout)
}
