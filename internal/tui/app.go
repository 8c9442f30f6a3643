package tui

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/notify"
	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/thread"
)

// sidebarEntries is the navigation order of the category sidebar. The empty
// category means "all mail".
var sidebarEntries = []model.Category{
	"",
	model.CategoryApplied,
	model.CategoryInterviewed,
	model.CategoryOffers,
	model.CategoryRejected,
	model.CategoryIrrelevant,
}

// App encapsulates the terminal dashboard
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	views  map[string]tview.Primitive

	emailService    services.EmailService
	statsService    services.StatsService
	followupService services.FollowupService
	notifier        *notify.Center

	errorHandler *ErrorHandler
	theme        *config.Theme
	logger       *log.Logger

	// State management
	currentCategory model.Category
	currentFocus    string // "threads" or "followups"
	threads         []thread.Group
	totalThreads    int
	suggestions     []services.Suggestion
	uiReady         bool
}

// NewApp creates a new dashboard application
func NewApp(cfg *config.Config, theme *config.Theme,
	emailService services.EmailService, statsService services.StatsService,
	followupService services.FollowupService, notifier *notify.Center,
	logger *log.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	if theme == nil {
		theme = config.DefaultTheme()
	}

	app := &App{
		Application:     tview.NewApplication(),
		Pages:           tview.NewPages(),
		Config:          cfg,
		ctx:             ctx,
		cancel:          cancel,
		views:           make(map[string]tview.Primitive),
		emailService:    emailService,
		statsService:    statsService,
		followupService: followupService,
		notifier:        notifier,
		theme:           theme,
		logger:          logger,
		currentCategory: sidebarEntries[0],
		currentFocus:    "threads",
	}

	app.initComponents()
	app.initErrorHandler()
	app.bindKeys()
	app.wireNotifications()

	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		if !app.uiReady {
			app.uiReady = true
		}
		return false
	})

	return app
}

// initErrorHandler wires the error handler to the status bar
func (a *App) initErrorHandler() {
	a.errorHandler = NewErrorHandler(a.notifier, a.logger)
}

// GetErrorHandler returns the error handler
func (a *App) GetErrorHandler() *ErrorHandler {
	return a.errorHandler
}

// wireNotifications routes notification center messages into the status bar
func (a *App) wireNotifications() {
	if a.notifier == nil {
		return
	}
	a.notifier.SetListener(func(msg notify.Message, visible bool) {
		a.QueueUpdateDraw(func() {
			status, ok := a.views["status"].(*tview.TextView)
			if !ok {
				return
			}
			if !visible {
				status.SetTextColor(a.statusColor(notify.LevelInfo))
				status.SetText(a.statusBaseline())
				return
			}
			status.SetTextColor(a.statusColor(msg.Level))
			status.SetText(msg.Text)
		})
	})
}

// statusBaseline is the status bar text when no notification is visible
func (a *App) statusBaseline() string {
	return "JobTrail | Tab switch panel | r refresh | m mark read | d dismiss | f done | q quit"
}

// Run starts the application, loading data before the first draw
func (a *App) Run() error {
	a.refreshAll()
	a.SetRoot(a.Pages, true)
	if err := a.Application.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// Stop tears down the application
func (a *App) Stop() {
	a.cancel()
	a.Application.Stop()
}

// refreshAll reloads every panel from the services
func (a *App) refreshAll() {
	a.reloadThreads()
	a.reloadStats()
	a.reloadSuggestions()
}

// setCategory switches the sidebar selection and reloads the thread list
func (a *App) setCategory(cat model.Category) {
	a.mu.Lock()
	a.currentCategory = cat
	a.mu.Unlock()
	a.reloadThreads()
}

func (a *App) category() model.Category {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentCategory
}

func (a *App) logf(format string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}
