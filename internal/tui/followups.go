package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// reloadSuggestions refreshes the follow-up suggestion panel
func (a *App) reloadSuggestions() {
	go func() {
		suggestions, err := a.followupService.GetSuggestions(a.ctx)
		if err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not load follow-up suggestions")
			return
		}
		a.mu.Lock()
		a.suggestions = suggestions
		a.mu.Unlock()

		a.QueueUpdateDraw(func() {
			a.renderSuggestions()
		})
	}()
}

// renderSuggestions fills the follow-up table
func (a *App) renderSuggestions() {
	table, ok := a.views["followups"].(*tview.Table)
	if !ok {
		return
	}
	table.Clear()

	a.mu.RLock()
	suggestions := a.suggestions
	a.mu.RUnlock()

	if len(suggestions) == 0 {
		table.SetCell(0, 0, tview.NewTableCell("Nothing needs a nudge right now").
			SetTextColor(a.themeColor(a.theme.Colors.Border)).
			SetSelectable(false))
		return
	}

	for row, s := range suggestions {
		subject := s.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		label := fmt.Sprintf("%s · %s · quiet %dd · %s", subject, s.From, s.QuietDays, s.Reason)
		table.SetCell(row, 0, tview.NewTableCell(label).
			SetTextColor(a.categoryColor(s.Category)).
			SetAttributes(tcell.AttrNone).
			SetExpansion(1))
	}
}

// selectedSuggestion returns the suggestion under the cursor
func (a *App) selectedSuggestion() (string, bool) {
	table, ok := a.views["followups"].(*tview.Table)
	if !ok {
		return "", false
	}
	row, _ := table.GetSelection()

	a.mu.RLock()
	defer a.mu.RUnlock()
	if row < 0 || row >= len(a.suggestions) {
		return "", false
	}
	return a.suggestions[row].ThreadKey, true
}

// dismissSelected hides the selected suggestion
func (a *App) dismissSelected() {
	key, ok := a.selectedSuggestion()
	if !ok {
		return
	}
	go func() {
		if err := a.followupService.Dismiss(a.ctx, key); err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not dismiss suggestion")
			return
		}
		a.GetErrorHandler().ShowInfo(a.ctx, "Suggestion dismissed")
		a.reloadSuggestions()
	}()
}

// completeSelected records that the selected follow-up was sent
func (a *App) completeSelected() {
	key, ok := a.selectedSuggestion()
	if !ok {
		return
	}
	go func() {
		if err := a.followupService.Complete(a.ctx, key); err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not record follow-up")
			return
		}
		a.GetErrorHandler().ShowSuccess(a.ctx, "Follow-up recorded")
		a.reloadSuggestions()
	}()
}
