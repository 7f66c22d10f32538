// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package events provides an in-process pub/sub relay. The planner engine
// stays unaware of it; callers publish completion signals after engine calls
// so screens and widgets can refresh.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kinds of signals the planner emits.
type EventType string

const (
	EventAllocationCompleted EventType = "allocation.completed"
	EventReviewScheduled     EventType = "review.scheduled"
	EventReviewSlotsSelected EventType = "review.slots_selected"
	EventPreferencesUpdated  EventType = "preferences.updated"
	EventPatternsDetected    EventType = "patterns.detected"
	EventMultiplierAdjusted  EventType = "difficulty.multiplier_adjusted"
	EventVaultBootstrapped   EventType = "vault.bootstrapped"
)

// Event is one published signal.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Data      map[string]any `json:"data,omitempty"`
}

// Handler receives published events.
type Handler func(Event)

const maxHistory = 1000

// Bus is a synchronous publish-subscribe relay with a bounded event history.
// Safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	history  []Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers an event to all subscribers of its type, synchronously and
// in subscription order, then records it in the bounded history. The event's
// ID and timestamp are filled in if unset.
func (b *Bus) Publish(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Source == "" {
		event.Source = "planner"
	}

	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers[event.Type]))
	copy(handlers, b.handlers[event.Type])
	b.history = append(b.history, event)
	if len(b.history) > maxHistory {
		b.history = b.history[len(b.history)-maxHistory:]
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
	return event
}

// History returns a copy of the recorded events, oldest first.
func (b *Bus) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}
