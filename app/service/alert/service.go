package alert

import (
	"log/slog"
	"naapi/app/dto"
	"naapi/app/service/session"
	"naapi/app/util/mylog"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/samber/do"
)

const alertTTL = 10 * time.Minute

type UserSource interface {
	SubscribeUser(callback func(usr *dto.User)) func()
}

// Service reports to the telegram chat when an authenticated session ends,
// at most once per account every alertTTL.
type Service struct {
	alertCache  *ttlcache.Cache[string, struct{}]
	unsubscribe func()

	mu   sync.Mutex
	last *dto.User
}

func New(di *do.Injector) (*Service, error) {
	return NewWith(do.MustInvoke[*session.Service](di), alertTTL), nil
}

func NewWith(source UserSource, ttl time.Duration) *Service {
	alertCache := ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](ttl),
	)
	go alertCache.Start()

	s := &Service{
		alertCache: alertCache,
	}
	s.unsubscribe = source.SubscribeUser(func(usr *dto.User) {
		s.onUser(usr)
	})

	return s
}

// onUser reports whether an alert was raised.
func (s *Service) onUser(usr *dto.User) bool {
	s.mu.Lock()
	previous := s.last
	s.last = usr
	s.mu.Unlock()

	if usr != nil || previous == nil {
		return false
	}

	_, exists := s.alertCache.GetOrSet(previous.Email, struct{}{})
	if exists {
		return false
	}

	slog.Warn("Console session ended, log in again to restore access",
		slog.String("email", previous.Email),
		slog.Bool(mylog.TelegramAttr, true),
	)

	return true
}

func (s *Service) Shutdown() error {
	s.unsubscribe()
	s.alertCache.Stop()

	return nil
}
