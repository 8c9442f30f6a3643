package tui

import (
	"context"
	"log"
	"strings"

	"github.com/jobtrail/jobtrail/internal/notify"
)

// ErrorHandler provides consistent error handling and user feedback. User
// facing messages go through the notification center; technical errors go
// to the logger.
type ErrorHandler struct {
	notifier *notify.Center
	logger   *log.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(notifier *notify.Center, logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// HandleError handles an error and shows appropriate user feedback
func (eh *ErrorHandler) HandleError(ctx context.Context, err error, userMsg string) {
	if err == nil {
		return
	}

	if eh.logger != nil {
		eh.logger.Printf("ERROR: %v", err)
	}

	if userMsg == "" {
		userMsg = "An error occurred"
	}
	eh.ShowMessage(ctx, userMsg, notify.LevelError)
}

// ShowMessage displays a message to the user
func (eh *ErrorHandler) ShowMessage(ctx context.Context, msg string, level notify.Level) {
	if strings.TrimSpace(msg) == "" {
		return
	}

	if eh.logger != nil {
		eh.logger.Printf("%s: %s", level, msg)
	}

	if eh.notifier != nil {
		eh.notifier.Publish(msg, level)
	}
}

// Convenience methods for common operations

// ShowInfo shows an info message
func (eh *ErrorHandler) ShowInfo(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, notify.LevelInfo)
}

// ShowWarning shows a warning message
func (eh *ErrorHandler) ShowWarning(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, notify.LevelWarning)
}

// ShowError shows an error message
func (eh *ErrorHandler) ShowError(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, notify.LevelError)
}

// ShowSuccess shows a success message
func (eh *ErrorHandler) ShowSuccess(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, notify.LevelSuccess)
}
