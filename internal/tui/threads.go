package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/render"
	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// categoryLabel returns the sidebar display name for a category
func categoryLabel(cat model.Category) string {
	if cat == "" {
		return "All mail"
	}
	return strings.ToUpper(string(cat)[:1]) + string(cat)[1:]
}

// reloadThreads fetches the current category's conversations and redraws the
// sidebar counts and the thread list.
func (a *App) reloadThreads() {
	go func() {
		cat := a.category()
		page, err := a.emailService.ListThreads(a.ctx, services.ThreadQueryOptions{Category: cat})
		if err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not load conversations")
			return
		}

		counts := make(map[model.Category]int, len(sidebarEntries))
		for _, entry := range sidebarEntries {
			n, err := a.emailService.CountUniqueThreads(a.ctx, entry)
			if err != nil {
				a.logf("count threads %q: %v", entry, err)
				continue
			}
			counts[entry] = n
		}

		a.mu.Lock()
		a.threads = page.Threads
		a.totalThreads = page.TotalCount
		a.mu.Unlock()

		a.QueueUpdateDraw(func() {
			a.renderSidebar(counts)
			a.renderThreads(page.Threads)
		})
	}()
}

// renderSidebar fills the category table with unique-thread counts
func (a *App) renderSidebar(counts map[model.Category]int) {
	sidebar, ok := a.views["sidebar"].(*tview.Table)
	if !ok {
		return
	}
	sidebar.Clear()
	for row, entry := range sidebarEntries {
		label := fmt.Sprintf("%-12s %3d", categoryLabel(entry), counts[entry])
		cell := tview.NewTableCell(label).
			SetTextColor(a.categoryColor(entry)).
			SetExpansion(1)
		sidebar.SetCell(row, 0, cell)
	}
}

// renderThreads fills the conversation table for the selected category
func (a *App) renderThreads(groups []thread.Group) {
	table, ok := a.views["threads"].(*tview.Table)
	if !ok {
		return
	}
	table.Clear()
	table.SetFixed(1, 0)

	headers := []string{"Subject", "From", "Date", "Msgs", "Preview"}
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(a.themeColor(a.theme.Colors.Accent)).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for i, grp := range groups {
		row := i + 1
		color := a.themeColor(a.theme.Colors.Text)
		subject := grp.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		if grp.UnreadCount > 0 {
			color = a.themeColor(a.theme.Colors.Unread)
			subject = fmt.Sprintf("● %s (%d)", subject, grp.UnreadCount)
		}

		table.SetCell(row, 0, tview.NewTableCell(subject).SetTextColor(color).SetExpansion(2))
		table.SetCell(row, 1, tview.NewTableCell(grp.From).SetTextColor(color).SetExpansion(1))
		table.SetCell(row, 2, tview.NewTableCell(grp.Date).SetTextColor(color))
		table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", grp.MessageCount)).
			SetTextColor(color).SetAlign(tview.AlignRight))
		table.SetCell(row, 4, tview.NewTableCell(render.Snippet(grp.LatestEmail, 48)).
			SetTextColor(a.themeColor(a.theme.Colors.Border)).SetExpansion(2))
	}
}

// selectedThread returns the conversation under the cursor
func (a *App) selectedThread() (thread.Group, bool) {
	table, ok := a.views["threads"].(*tview.Table)
	if !ok {
		return thread.Group{}, false
	}
	row, _ := table.GetSelection()
	idx := row - 1

	a.mu.RLock()
	defer a.mu.RUnlock()
	if idx < 0 || idx >= len(a.threads) {
		return thread.Group{}, false
	}
	return a.threads[idx], true
}

// markSelectedRead marks every message of the selected conversation as read
func (a *App) markSelectedRead() {
	grp, ok := a.selectedThread()
	if !ok {
		return
	}
	if grp.UnreadCount == 0 {
		a.GetErrorHandler().ShowInfo(a.ctx, "Conversation already read")
		return
	}
	go func() {
		if err := a.emailService.MarkThreadRead(a.ctx, grp); err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not mark conversation read")
			return
		}
		a.GetErrorHandler().ShowSuccess(a.ctx, "Marked read")
		a.reloadThreads()
		a.reloadStats()
	}()
}
