package alert

import (
	"naapi/app/dto"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type staticSource struct{}

func (staticSource) SubscribeUser(callback func(usr *dto.User)) func() {
	callback(nil)
	return func() {}
}

func TestService_AlertsOncePerAccount(t *testing.T) {
	s := NewWith(staticSource{}, time.Hour)
	defer s.Shutdown() //nolint:errcheck

	ana := &dto.User{ID: 1, Email: "ana@naapi.br"}
	bia := &dto.User{ID: 2, Email: "bia@naapi.br"}

	assert.Equal(t, false, s.onUser(ana))
	assert.Equal(t, true, s.onUser(nil))
	assert.Equal(t, false, s.onUser(nil))

	assert.Equal(t, false, s.onUser(ana))
	assert.Equal(t, false, s.onUser(nil))

	assert.Equal(t, false, s.onUser(bia))
	assert.Equal(t, true, s.onUser(nil))
}
