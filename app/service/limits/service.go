package limits

import (
	"context"
	"fmt"
	"naapi/app/util"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/samber/do"
	"golang.org/x/time/rate"
)

const limiterTTL = 10 * time.Minute

type Service struct {
	limiters *ttlcache.Cache[string, *rate.Limiter]
}

func New(_ *do.Injector) (*Service, error) {
	limiters := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](limiterTTL),
	)
	go limiters.Start()

	return &Service{
		limiters: limiters,
	}, nil
}

// AllowIpRpm reports whether the client ip stored in ctx may run action now,
// given rpm requests per minute with a burst of rpm.
func (s *Service) AllowIpRpm(ctx context.Context, action string, rpm int) bool {
	return s.Allow(fmt.Sprintf("%s:%s", action, util.GetIpFromContext(ctx)), rpm)
}

func (s *Service) Allow(key string, rpm int) bool {
	if rpm <= 0 {
		return true
	}

	item, _ := s.limiters.GetOrSet(key, rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm))

	return item.Value().Allow()
}

func (s *Service) Shutdown() error {
	s.limiters.Stop()
	return nil
}
