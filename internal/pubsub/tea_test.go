package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(UpdatedEvent, "hello world")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "hello world", event.Payload)
	require.Equal(t, UpdatedEvent, event.Type)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	ch := make(chan Event[string])
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)(), "should return nil when context cancelled")
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)(), "should return nil when channel closed")
}

func TestLatestCmd_CoalescesBacklog(t *testing.T) {
	ch := make(chan Event[int], 4)
	ch <- Event[int]{Type: UpdatedEvent, Payload: 1}
	ch <- Event[int]{Type: UpdatedEvent, Payload: 2}
	ch <- Event[int]{Type: UpdatedEvent, Payload: 3}

	msg := LatestCmd(context.Background(), ch)()

	event, ok := msg.(Event[int])
	require.True(t, ok)
	require.Equal(t, 3, event.Payload)
	require.Empty(t, ch)
}

func TestLatestCmd_ClosedAfterBacklog(t *testing.T) {
	ch := make(chan Event[int], 2)
	ch <- Event[int]{Payload: 5}
	close(ch)

	event, ok := LatestCmd(context.Background(), ch)().(Event[int])
	require.True(t, ok)
	require.Equal(t, 5, event.Payload)

	require.Nil(t, LatestCmd(context.Background(), ch)())
}

func TestContinuousListener_Listen(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[int](ctx, broker)

	broker.Publish(CreatedEvent, 1)
	broker.Publish(UpdatedEvent, 2)
	broker.Publish(FailedEvent, 3)

	for _, want := range []struct {
		payload int
		typ     EventType
	}{{1, CreatedEvent}, {2, UpdatedEvent}, {3, FailedEvent}} {
		event, ok := listener.Listen()().(Event[int])
		require.True(t, ok, "msg should be Event[int]")
		require.Equal(t, want.payload, event.Payload)
		require.Equal(t, want.typ, event.Type)
	}
}

func TestContinuousListener_Latest(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[int](ctx, broker)
	broker.Publish(UpdatedEvent, 1)
	broker.Publish(UpdatedEvent, 2)

	event, ok := listener.Latest()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 2, event.Payload)
}
