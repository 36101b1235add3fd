package limits

import (
	"context"
	"naapi/app/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AllowIpRpm(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Shutdown() //nolint:errcheck

	first := context.WithValue(context.Background(), util.IpContextKey, "10.0.0.1")
	second := context.WithValue(context.Background(), util.IpContextKey, "10.0.0.2")

	for range 3 {
		assert.True(t, s.AllowIpRpm(first, "login", 3))
	}
	assert.False(t, s.AllowIpRpm(first, "login", 3))

	assert.True(t, s.AllowIpRpm(second, "login", 3))
	assert.True(t, s.AllowIpRpm(first, "logout", 3))
}

func TestService_NonPositiveRpmIsUnlimited(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Shutdown() //nolint:errcheck

	for range 10 {
		assert.True(t, s.Allow("login:10.0.0.1", 0))
	}
}
