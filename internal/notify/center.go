// Package notify implements the status notification center: a bounded FIFO
// queue of user-facing messages with at most one message visible at a time.
// The center is an explicit object passed by handle to its consumers; there
// is no package-level state.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the log tag for a level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Message is one queued notification.
type Message struct {
	ID         string
	Text       string
	Level      Level
	Duration   time.Duration
	EnqueuedAt time.Time
}

// Listener receives display transitions from the consumer goroutine. It is
// called with visible=true when a message becomes the visible one and
// visible=false when its display time ends. Callers that touch UI state must
// re-queue onto their own event loop.
type Listener func(msg Message, visible bool)

// Center owns the queue and its single consumer goroutine. Messages are
// shown strictly in publish order, one at a time, each for its duration.
type Center struct {
	queue  chan Message
	done   chan struct{}
	wg     sync.WaitGroup
	logger *log.Logger

	defaultDuration time.Duration

	mu       sync.RWMutex
	listener Listener
	current  *Message
	closed   bool
}

// NewCenter creates a center with the given queue capacity and per-message
// display duration, and starts the consumer. logger may be nil.
func NewCenter(capacity int, displayFor time.Duration, logger *log.Logger) *Center {
	if capacity <= 0 {
		capacity = 32
	}
	if displayFor <= 0 {
		displayFor = 4 * time.Second
	}
	c := &Center{
		queue:           make(chan Message, capacity),
		done:            make(chan struct{}),
		logger:          logger,
		defaultDuration: displayFor,
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// SetListener installs the display callback. Passing nil detaches the
// current one.
func (c *Center) SetListener(l Listener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

// Publish enqueues a message. When the queue is full the message is dropped
// and logged; notifications are best-effort and never block the caller.
func (c *Center) Publish(text string, level Level) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed || text == "" {
		return
	}

	msg := Message{
		ID:         uuid.NewString(),
		Text:       text,
		Level:      level,
		Duration:   c.defaultDuration,
		EnqueuedAt: time.Now(),
	}
	if c.logger != nil {
		c.logger.Printf("%s: %s", level, text)
	}

	select {
	case c.queue <- msg:
	default:
		if c.logger != nil {
			c.logger.Printf("notify: queue full, dropping message %q", text)
		}
	}
}

// Info publishes an informational message.
func (c *Center) Info(text string) { c.Publish(text, LevelInfo) }

// Success publishes a success message.
func (c *Center) Success(text string) { c.Publish(text, LevelSuccess) }

// Warning publishes a warning message.
func (c *Center) Warning(text string) { c.Publish(text, LevelWarning) }

// Error publishes an error message.
func (c *Center) Error(text string) { c.Publish(text, LevelError) }

// Current returns the message being displayed, if any.
func (c *Center) Current() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Message{}, false
	}
	return *c.current, true
}

// Close stops the consumer goroutine and waits for it to exit. Queued
// messages that were never displayed are discarded.
func (c *Center) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

func (c *Center) run() {
	defer c.wg.Done()
	defer func() {
		c.mu.Lock()
		c.current = nil
		c.mu.Unlock()
	}()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.queue:
			c.transition(&msg, true)

			timer.Reset(msg.Duration)
			select {
			case <-c.done:
				return
			case <-timer.C:
			}

			c.transition(&msg, false)
		}
	}
}

func (c *Center) transition(msg *Message, visible bool) {
	c.mu.Lock()
	if visible {
		c.current = msg
	} else {
		c.current = nil
	}
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(*msg, visible)
	}
}
