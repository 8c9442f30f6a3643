package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tview"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/services"
)

// reloadStats refreshes the pipeline summary panel
func (a *App) reloadStats() {
	go func() {
		stats, err := a.statsService.GetDashboardStats(a.ctx)
		if err != nil {
			a.GetErrorHandler().HandleError(a.ctx, err, "Could not load statistics")
			return
		}
		content := a.formatStats(stats)
		a.QueueUpdateDraw(func() {
			if view, ok := a.views["stats"].(*tview.TextView); ok {
				view.SetText(content)
			}
		})
	}()
}

// formatStats renders the dashboard statistics as tview markup
func (a *App) formatStats(stats *services.DashboardStats) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s::b]PIPELINE[-::-]\n\n", a.theme.Colors.Accent))
	for _, cat := range model.Categories {
		colorName := a.theme.Colors.Text
		if c, ok := a.theme.Colors.Categories[string(cat)]; ok {
			colorName = c
		}
		b.WriteString(fmt.Sprintf("[%s]%-12s[-] %d\n", colorName, categoryLabel(cat), stats.CategoryCounts[cat]))
	}

	b.WriteString(fmt.Sprintf("\nConversations: %d\n", stats.TotalThreads))
	b.WriteString(fmt.Sprintf("Messages:      %d\n", stats.TotalMessages))
	b.WriteString(fmt.Sprintf("Unread:        %d\n", stats.UnreadMessages))
	b.WriteString(fmt.Sprintf("Response rate: %.0f%%\n", stats.ResponseRate*100))

	if len(stats.WeeklyActivity) > 0 {
		b.WriteString(fmt.Sprintf("\n[%s::b]APPLICATIONS PER WEEK[-::-]\n\n", a.theme.Colors.Accent))
		max := 0
		for _, wk := range stats.WeeklyActivity {
			if wk.Applications > max {
				max = wk.Applications
			}
		}
		for _, wk := range stats.WeeklyActivity {
			bar := ""
			if max > 0 {
				bar = strings.Repeat("▇", wk.Applications*12/max)
			}
			b.WriteString(fmt.Sprintf("%s [%s]%-12s[-] %d\n",
				wk.WeekStart.Format("Jan 02"), a.theme.Colors.Accent, bar, wk.Applications))
		}
	}

	return b.String()
}
