package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/jobtrail/jobtrail/internal/notify"
)

// initComponents builds the dashboard widgets and the main layout
func (a *App) initComponents() {
	sidebar := tview.NewTable().SetSelectable(true, false)
	sidebar.SetBorder(true).
		SetBorderColor(a.themeColor(a.theme.Colors.Border)).
		SetTitle(" Categories ").
		SetTitleColor(a.themeColor(a.theme.Colors.Title))
	sidebar.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(a.themeColor(a.theme.Colors.Accent)))
	sidebar.SetSelectionChangedFunc(func(row, col int) {
		if row >= 0 && row < len(sidebarEntries) {
			a.setCategory(sidebarEntries[row])
		}
	})
	a.views["sidebar"] = sidebar

	threads := tview.NewTable().SetSelectable(true, false)
	threads.SetBorder(true).
		SetBorderColor(a.themeColor(a.theme.Colors.Border)).
		SetBorderAttributes(tcell.AttrBold).
		SetTitle(" Conversations ").
		SetTitleColor(a.themeColor(a.theme.Colors.Title)).
		SetTitleAlign(tview.AlignCenter)
	threads.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(a.themeColor(a.theme.Colors.Accent)))
	a.views["threads"] = threads

	stats := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	stats.SetBorder(true).
		SetBorderColor(a.themeColor(a.theme.Colors.Border)).
		SetTitle(" Pipeline ").
		SetTitleColor(a.themeColor(a.theme.Colors.Title))
	a.views["stats"] = stats

	followups := tview.NewTable().SetSelectable(true, false)
	followups.SetBorder(true).
		SetBorderColor(a.themeColor(a.theme.Colors.Border)).
		SetTitle(" Follow-ups ").
		SetTitleColor(a.themeColor(a.theme.Colors.Title))
	followups.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(a.themeColor(a.theme.Colors.Accent)))
	a.views["followups"] = followups

	status := tview.NewTextView().SetDynamicColors(true)
	status.SetTextColor(a.statusColor(notify.LevelInfo))
	status.SetText(a.statusBaseline())
	a.views["status"] = status

	center := tview.NewFlex().SetDirection(tview.FlexRow)
	center.AddItem(threads, 0, 3, true)
	center.AddItem(followups, 0, 1, false)

	body := tview.NewFlex().SetDirection(tview.FlexColumn)
	body.AddItem(sidebar, 22, 0, false)
	body.AddItem(center, 0, 3, true)
	body.AddItem(stats, 34, 0, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow)
	root.AddItem(body, 0, 1, true)
	root.AddItem(status, 1, 0, false)

	a.Pages.AddPage("main", root, true, true)
}
