package tui

import (
	"github.com/derailed/tcell/v2"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/notify"
)

// themeColor resolves a theme color name or #rrggbb string, falling back to
// the terminal default for unknown names.
func (a *App) themeColor(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}

// categoryColor returns the configured color for a category
func (a *App) categoryColor(cat model.Category) tcell.Color {
	if c, ok := a.theme.Colors.Categories[string(cat)]; ok {
		return a.themeColor(c)
	}
	return a.themeColor(a.theme.Colors.Text)
}

// statusColor maps a notification level to its status bar color
func (a *App) statusColor(level notify.Level) tcell.Color {
	switch level {
	case notify.LevelSuccess:
		return a.themeColor(a.theme.Colors.StatusSuccess)
	case notify.LevelWarning:
		return a.themeColor(a.theme.Colors.StatusWarning)
	case notify.LevelError:
		return a.themeColor(a.theme.Colors.StatusError)
	default:
		return a.themeColor(a.theme.Colors.StatusInfo)
	}
}
