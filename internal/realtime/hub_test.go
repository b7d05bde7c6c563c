package realtime_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gharkeseva/gharseva-api/internal/realtime"
)

// memSub records every event it receives. alive=false simulates a dead
// connection that rejects writes.
type memSub struct {
	mu     sync.Mutex
	events []realtime.Event
	alive  bool
}

func newMemSub() *memSub { return &memSub{alive: true} }

func (s *memSub) Send(ev realtime.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return false
	}
	s.events = append(s.events, ev)
	return true
}

func (s *memSub) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestHub_BroadcastReachesAllConnectionsOfIdentity(t *testing.T) {
	hub := realtime.NewHub()
	phone, laptop := newMemSub(), newMemSub()
	hub.Join("CUST-1001", phone)
	hub.Join("CUST-1001", laptop)
	other := newMemSub()
	hub.Join("CUST-2002", other)

	n := hub.Broadcast("CUST-1001", realtime.Event{Kind: "ping"})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"ping"}, phone.kinds())
	assert.Equal(t, []string{"ping"}, laptop.kinds())
	assert.Empty(t, other.kinds(), "other identities must not receive the event")
}

func TestHub_BroadcastToEmptyChannel(t *testing.T) {
	hub := realtime.NewHub()
	assert.Equal(t, 0, hub.Broadcast("nobody", realtime.Event{Kind: "ping"}))
}

func TestHub_DeadConnectionNotCounted(t *testing.T) {
	hub := realtime.NewHub()
	dead := newMemSub()
	dead.alive = false
	live := newMemSub()
	hub.Join("VND-1001", dead)
	hub.Join("VND-1001", live)

	n := hub.Broadcast("VND-1001", realtime.Event{Kind: "ping"})
	assert.Equal(t, 1, n, "only accepting connections count as delivered")
}

func TestHub_LeavePrunesChannel(t *testing.T) {
	hub := realtime.NewHub()
	sub := newMemSub()
	hub.Join("VND-1001", sub)
	assert.Equal(t, 1, hub.Connections("VND-1001"))

	hub.Leave("VND-1001", sub)
	assert.Equal(t, 0, hub.Connections("VND-1001"))
	assert.Equal(t, 0, hub.Broadcast("VND-1001", realtime.Event{Kind: "ping"}))
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := realtime.NewHub()
	a, b := newMemSub(), newMemSub()
	hub.Join("CUST-1001", a)
	hub.Join("VND-2002", b)

	hub.BroadcastAll(realtime.Event{Kind: "presence"})

	assert.Equal(t, []string{"presence"}, a.kinds())
	assert.Equal(t, []string{"presence"}, b.kinds())
}

func TestHub_IgnoresEmptyIdentityAndNilSubscriber(t *testing.T) {
	hub := realtime.NewHub()
	hub.Join("", newMemSub())
	hub.Join("VND-1001", nil)
	assert.Equal(t, 0, hub.Connections(""))
	assert.Equal(t, 0, hub.Connections("VND-1001"))
}

func TestHub_ConcurrentJoinBroadcastLeave(t *testing.T) {
	hub := realtime.NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := newMemSub()
			hub.Join("VND-1001", sub)
			hub.Broadcast("VND-1001", realtime.Event{Kind: "ping"})
			hub.Leave("VND-1001", sub)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Connections("VND-1001"))
}
