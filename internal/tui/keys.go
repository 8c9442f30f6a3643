package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// bindKeys installs the global key handling
func (a *App) bindKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			a.cycleFocus()
			return nil
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		}

		switch event.Rune() {
		case 'q':
			a.Stop()
			return nil
		case 'r':
			a.GetErrorHandler().ShowInfo(a.ctx, "Refreshing")
			a.refreshAll()
			return nil
		case 'm':
			a.markSelectedRead()
			return nil
		case 'd':
			if a.focusName() == "followups" {
				a.dismissSelected()
				return nil
			}
		case 'f':
			if a.focusName() == "followups" {
				a.completeSelected()
				return nil
			}
		case 'J':
			a.moveSidebar(1)
			return nil
		case 'K':
			a.moveSidebar(-1)
			return nil
		}
		return event
	})
}

func (a *App) focusName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentFocus
}

// cycleFocus alternates between the thread list and the follow-up panel
func (a *App) cycleFocus() {
	a.mu.Lock()
	next := "followups"
	if a.currentFocus == "followups" {
		next = "threads"
	}
	a.currentFocus = next
	a.mu.Unlock()

	if view, ok := a.views[next]; ok {
		a.SetFocus(view)
	}
}

// moveSidebar shifts the category selection by delta rows
func (a *App) moveSidebar(delta int) {
	sidebar, ok := a.views["sidebar"].(*tview.Table)
	if !ok {
		return
	}
	row, _ := sidebar.GetSelection()
	row += delta
	if row < 0 {
		row = 0
	}
	if row >= len(sidebarEntries) {
		row = len(sidebarEntries) - 1
	}
	sidebar.Select(row, 0)
}
