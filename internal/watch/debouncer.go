package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into a single callback
// invocation. Editors tend to emit several events per save; the callback
// fires once with the last path seen, after the interval has passed with
// no further events.
//
// All state lives in a single goroutine fed by Trigger; there is no
// shared mutable state between callers and the timer.
type Debouncer struct {
	interval time.Duration
	events   chan string
	done     chan struct{}
	stop     sync.Once
}

// NewDebouncer starts a debouncer that waits for interval of quiet before
// invoking callback with the path of the last event.
func NewDebouncer(interval time.Duration, callback func(path string)) *Debouncer {
	d := &Debouncer{
		interval: interval,
		events:   make(chan string, 16),
		done:     make(chan struct{}),
	}

	go d.loop(callback)

	return d
}

// loop owns the pending path and the timer. It exits when Stop closes done.
func (d *Debouncer) loop(callback func(path string)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case path := <-d.events:
			pending = path

			if timer == nil {
				timer = time.NewTimer(d.interval)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}

				timer.Reset(d.interval)
			}

			fire = timer.C

		case <-fire:
			// Stop may race the expiring timer; it always wins.
			select {
			case <-d.done:
				return
			default:
			}

			fire = nil
			invoke(callback, pending)

		case <-d.done:
			return
		}
	}
}

// invoke shields the loop goroutine from a panicking callback.
func invoke(callback func(path string), path string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("debounced callback panicked", slog.Any("error", r))
		}
	}()

	callback(path)
}

// Trigger records an event for the given path. Safe to call from multiple
// goroutines and after Stop.
func (d *Debouncer) Trigger(path string) {
	select {
	case d.events <- path:
	case <-d.done:
	}
}

// Stop cancels any pending callback and releases the debouncer's goroutine.
func (d *Debouncer) Stop() {
	d.stop.Do(func() { close(d.done) })
}
