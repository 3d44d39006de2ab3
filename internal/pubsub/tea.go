package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a command that waits for the next event on ch and
// delivers it as a tea.Msg. It yields nil once ctx is done or ch closes.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// LatestCmd is like ListenCmd but, after the first event arrives, drains
// whatever else is already buffered and delivers only the newest event.
// Views that redraw from current state use it to skip stale frames.
func LatestCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		var latest Event[T]
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			latest = event
		}
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return latest
				}
				latest = event
			default:
				return latest
			}
		}
	}
}

// ContinuousListener holds one broker subscription for the lifetime of a
// Bubble Tea model. Call Listen (or Latest) again after each delivered
// event to keep receiving.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker until ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen waits for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}

// Latest waits for the next event and coalesces any backlog.
func (l *ContinuousListener[T]) Latest() tea.Cmd {
	return LatestCmd(l.ctx, l.ch)
}
