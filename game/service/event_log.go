package service

import (
	"sync"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

const (
	// MaxEventLogSize bounds the events kept per session
	MaxEventLogSize = 1000

	defaultPageSize = 20
	maxPageSize     = 100
)

// EventLog is a bounded, append-only record of scene events. When full the
// oldest events are dropped.
type EventLog struct {
	mu     sync.RWMutex
	events []engine.Event
	max    int
}

// NewEventLog creates a log holding at most max events
func NewEventLog(max int) *EventLog {
	if max <= 0 {
		max = MaxEventLogSize
	}
	return &EventLog{max: max}
}

// Append records an event
func (l *EventLog) Append(e engine.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
	if over := len(l.events) - l.max; over > 0 {
		l.events = append([]engine.Event(nil), l.events[over:]...)
	}
}

// Len returns the number of recorded events
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Since returns a copy of the events recorded after the first n
func (l *EventLog) Since(n int) []engine.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(l.events) {
		return nil
	}
	return append([]engine.Event(nil), l.events[n:]...)
}

// Page returns one page of the log
func (l *EventLog) Page(opts HistoryOptions) *EventLogResponse {
	l.mu.RLock()
	history := append([]engine.Event(nil), l.events...)
	l.mu.RUnlock()

	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var events []engine.Event
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			events = append(events, history[i])
		}
	} else if start < total {
		events = history[start:end]
	}

	if events == nil {
		events = []engine.Event{}
	}

	return &EventLogResponse{
		Events:      events,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
