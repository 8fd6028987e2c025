package notify

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func TestHub_DeliversOnlyToRecipient(t *testing.T) {
	hub := startHub(t)

	alice, bob := uuid.New(), uuid.New()
	aliceClient := NewClient(alice)
	bobClient := NewClient(bob)
	hub.Register(aliceClient)
	hub.Register(bobClient)

	require.Eventually(t, func() bool {
		return hub.ClientCount(alice) == 1 && hub.ClientCount(bob) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(entity.Notification{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		UserID:       alice,
		Title:        "Booking Confirmed",
	})

	select {
	case n := <-aliceClient.Ch:
		require.Equal(t, "Booking Confirmed", n.Title)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}

	select {
	case <-bobClient.Ch:
		t.Fatal("bob received alice's notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)

	userID := uuid.New()
	client := NewClient(userID)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_DoesNotBlockAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		client := NewClient(uuid.New())
		hub.Register(client)
		hub.Unregister(client)
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
}

func TestHubDispatcher(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	client := NewClient(userID)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, time.Second, 10*time.Millisecond)

	d := NewHubDispatcher(hub)
	require.NoError(t, d.Dispatch(context.Background(), &entity.Notification{UserID: userID, Title: "Hi"}))

	select {
	case n := <-client.Ch:
		require.Equal(t, "Hi", n.Title)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
}
