package pubsub

import (
	"naapi/app/dto"

	"github.com/samber/do"
	"github.com/simonfxr/pubsub"
)

const (
	sessionUserChannel         = "session.user"
	sessionInitializingChannel = "session.initializing"
)

type Service struct {
	bus *pubsub.Bus
}

func New(_ *do.Injector) (*Service, error) {
	return NewBus(), nil
}

func NewBus() *Service {
	return &Service{
		bus: pubsub.NewBus(),
	}
}

// Topic is a typed channel of the bus.
type Topic[T any] struct {
	bus     *pubsub.Bus
	channel string
}

func (t Topic[T]) Publish(value T) {
	t.bus.Publish(t.channel, value)
}

// Subscribe registers callback and returns the matching unsubscribe func.
func (t Topic[T]) Subscribe(callback func(value T)) func() {
	sub := t.bus.Subscribe(t.channel, func(message any) {
		value, _ := message.(T)
		callback(value)
	})

	return func() {
		t.bus.Unsubscribe(sub)
	}
}

// SessionUser carries the current user, nil once the session becomes anonymous.
func (s *Service) SessionUser() Topic[*dto.User] {
	return Topic[*dto.User]{bus: s.bus, channel: sessionUserChannel}
}

// SessionInitializing carries the initializing flag of the session store.
func (s *Service) SessionInitializing() Topic[bool] {
	return Topic[bool]{bus: s.bus, channel: sessionInitializingChannel}
}
