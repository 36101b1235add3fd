package pubsub

import (
	"naapi/app/dto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic_TypedDelivery(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var users []*dto.User

	unsubscribe := bus.SessionUser().Subscribe(func(usr *dto.User) {
		mu.Lock()
		defer mu.Unlock()
		users = append(users, usr)
	})

	bus.SessionUser().Publish(&dto.User{ID: 7})
	bus.SessionUser().Publish(nil)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(users) == 2
	}, time.Second, 5*time.Millisecond)

	unsubscribe()
	bus.SessionUser().Publish(&dto.User{ID: 8})
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, users, 2)
	assert.ElementsMatch(t, []int64{0, 7}, []int64{idOf(users[0]), idOf(users[1])})
}

func TestTopic_ChannelsAreIndependent(t *testing.T) {
	bus := NewBus()

	got := make(chan bool, 1)
	unsubscribe := bus.SessionInitializing().Subscribe(func(initializing bool) {
		got <- initializing
	})
	defer unsubscribe()

	bus.SessionUser().Publish(&dto.User{ID: 1})
	bus.SessionInitializing().Publish(false)

	select {
	case v := <-got:
		assert.False(t, v)
	case <-time.After(time.Second):
		t.Fatal("no initializing event")
	}
}

func idOf(usr *dto.User) int64 {
	if usr == nil {
		return 0
	}

	return usr.ID
}
