// Package scheduler drives the fixed-rate processes of the emulator
// from elapsed real time. Rather than one event per instruction, each
// event accumulates elapsed time and fires as many times as its period
// allows, so that the instruction rate and the timer rate stay
// independent of each other and of the host's speed.
package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Period returns the interval between events firing rate times a second.
func Period(rate int) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}

// Scheduler fires registered events in chronological order as
// elapsed time is fed to it through Advance. Events due at the
// same instant fire in the order they were registered.
type Scheduler struct {
	now    time.Duration
	events []*Event
}

// NewScheduler returns a new scheduler with no events.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the amount of time the scheduler has been advanced by.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// RegisterEvent registers fn to be called every period, the first
// call being one period from now. Registering an event type again
// replaces the previous registration.
func (s *Scheduler) RegisterEvent(eventType EventType, period time.Duration, fn func() error) {
	if period <= 0 {
		panic(fmt.Sprintf("scheduler: invalid period %v for %v", period, eventType))
	}
	e := s.find(eventType)
	if e == nil {
		e = &Event{eventType: eventType}
		s.events = append(s.events, e)
	}
	e.at = s.now + period
	e.period = period
	e.fn = fn
}

// SetPeriod changes the period of an already registered event. The
// next firing is rescheduled one new period from now.
func (s *Scheduler) SetPeriod(eventType EventType, period time.Duration) {
	if period <= 0 {
		return
	}
	if e := s.find(eventType); e != nil {
		e.period = period
		e.at = s.now + period
	}
}

// Advance moves the scheduler forward by elapsed, firing every
// event that falls due along the way. If an event handler returns
// an error, the scheduler stops at that event's time and returns it;
// the remaining time is discarded.
func (s *Scheduler) Advance(elapsed time.Duration) error {
	target := s.now + elapsed
	for {
		next := s.next()
		if next == nil || next.at > target {
			break
		}

		s.now = next.at
		next.at += next.period
		if err := next.fn(); err != nil {
			return err
		}
	}
	s.now = target
	return nil
}

// next returns the event due soonest.
func (s *Scheduler) next() *Event {
	var soonest *Event
	for _, e := range s.events {
		if e.fn == nil {
			continue
		}
		if soonest == nil || e.at < soonest.at {
			soonest = e
		}
	}
	return soonest
}

func (s *Scheduler) find(eventType EventType) *Event {
	for _, e := range s.events {
		if e.eventType == eventType {
			return e
		}
	}
	return nil
}

// String lists the registered events with their period and the
// time they next fire, in registration order.
func (s *Scheduler) String() string {
	parts := make([]string, 0, len(s.events))
	for _, e := range s.events {
		parts = append(parts, fmt.Sprintf("%v every %v next at %v", e.eventType, e.period, e.at))
	}
	return strings.Join(parts, ", ")
}
