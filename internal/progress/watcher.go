package progress

import (
	"context"
	"time"

	"github.com/deffatest/unity-bridge/internal/api"
)

// Kind discriminates the events published by Watch.
type Kind uint8

const (
	// KindProgress reports a change in the completion percentage.
	KindProgress Kind = iota + 1
	// KindDefects reports a change in the defect count.
	KindDefects
	// KindCompleted reports that the run reached a terminal state.
	// It is always the last event before the channel closes.
	KindCompleted
	// KindError reports a failed poll. The watch continues afterwards.
	KindError
)

// Event is one typed update about a test run.
type Event struct {
	// Kind tells which fields are meaningful.
	Kind Kind
	// Status is the run state reported by the service.
	Status string
	// Progress is the completion percentage.
	Progress int
	// DefectCount is the number of defects found so far.
	DefectCount int
	// Err carries the poll failure for KindError events.
	Err error
}

// StatusGetter is the slice of the API client the watcher needs.
type StatusGetter interface {
	GetTestStatus(ctx context.Context, testID string) (*api.TestStatus, error)
}

// eventBuffer decouples the poller from a briefly slow consumer.
const eventBuffer = 16

// Watch polls the test's status on the given interval and publishes typed
// events on the returned channel: progress and defect-count changes as they
// happen, transient poll errors, and a final completion event. The channel
// is closed when the run finishes or ctx is cancelled. The events preserve
// poll order for a single consumer.
func Watch(ctx context.Context, client StatusGetter, testID string, interval time.Duration) <-chan Event {
	events := make(chan Event, eventBuffer)

	go func() {
		defer close(events)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Progress always publishes its first snapshot; a defect count
		// only becomes news once it moves off zero.
		lastProgress := -1
		lastDefects := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			status, err := client.GetTestStatus(ctx, testID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				if !publish(ctx, events, Event{Kind: KindError, Err: err}) {
					return
				}

				continue
			}

			if status.Progress != lastProgress {
				lastProgress = status.Progress

				event := Event{
					Kind:     KindProgress,
					Status:   status.Status,
					Progress: status.Progress,
				}
				if !publish(ctx, events, event) {
					return
				}
			}

			if status.DefectCount != lastDefects {
				lastDefects = status.DefectCount

				event := Event{
					Kind:        KindDefects,
					Status:      status.Status,
					DefectCount: status.DefectCount,
				}
				if !publish(ctx, events, event) {
					return
				}
			}

			if status.Finished() {
				publish(ctx, events, Event{
					Kind:        KindCompleted,
					Status:      status.Status,
					Progress:    status.Progress,
					DefectCount: status.DefectCount,
				})

				return
			}
		}
	}()

	return events
}

// publish sends an event unless the context is cancelled first.
func publish(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
