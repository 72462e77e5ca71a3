// Package seqtimer measures a sequence of named, non-overlapping events and
// reports how much wall-clock time each one took.
//
// Starting an event finishes the previous one:
//
//	var t seqtimer.Timer
//	t.Start("load")
//	load()
//	t.Start("parse")
//	parse()
//	t.Print()
//
// prints the events most expensive first:
//
//	parse | 10078204 ns |  88%
//	 load |  1265423 ns |  11%
//
// Timer also implements fmt.Stringer and slog.LogValuer, but the last event
// has to be finished by hand in that case: slog.Debug("timings", "timer", t.Finish()).
package seqtimer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Event is a finished, named interval.
type Event struct {
	Name     string
	Duration time.Duration
}

type openEvent struct {
	name    string
	started time.Time
}

// Timer records sequential events. The zero value is ready to use.
// A Timer is not safe for concurrent use.
type Timer struct {
	events  []Event
	running *openEvent
	now     func() time.Time
	out     io.Writer
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now as the clock source.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		t.now = now
	}
}

// WithOutput sets the destination of Print (os.Stdout by default).
func WithOutput(w io.Writer) Option {
	return func(t *Timer) {
		t.out = w
	}
}

// New creates an empty timer.
func New(opts ...Option) *Timer {
	t := &Timer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start finishes the current event if necessary and starts a new one.
func (t *Timer) Start(name string) {
	t.Finish()
	t.running = &openEvent{name: name, started: t.clock()}
}

// Finish finishes the current event. It does nothing when no event is open.
func (t *Timer) Finish() *Timer {
	if t.running != nil {
		t.events = append(t.events, Event{
			Name:     t.running.name,
			Duration: t.clock().Sub(t.running.started),
		})
		t.running = nil
	}
	return t
}

// Print finishes the last event and writes the report.
func (t *Timer) Print() {
	t.Finish()
	_, _ = fmt.Fprintln(t.output(), t)
}

// Events returns the finished events in the order they were started.
func (t *Timer) Events() []Event {
	events := make([]Event, len(t.events))
	copy(events, t.events)
	return events
}

// Running returns the name of the open event, if any.
func (t *Timer) Running() (string, bool) {
	if t.running == nil {
		return "", false
	}
	return t.running.name, true
}

// Total returns the time all finished events took.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, e := range t.events {
		total += e.Duration
	}
	return total
}

// Report computes the report of the finished events.
func (t *Timer) Report() Report {
	name, open := t.Running()
	return NewReport(t.events, name, open)
}

// WriteTo writes the report to w.
func (t *Timer) WriteTo(w io.Writer) (int64, error) {
	return t.Report().WriteTo(w)
}

// String returns the report as text.
func (t *Timer) String() string {
	return t.Report().String()
}

// LogValue implements slog.LogValuer.
func (t *Timer) LogValue() slog.Value {
	return slog.StringValue(t.String())
}

func (t *Timer) clock() time.Time {
	if t.now == nil {
		return time.Now()
	}
	return t.now()
}

func (t *Timer) output() io.Writer {
	if t.out == nil {
		return os.Stdout
	}
	return t.out
}
