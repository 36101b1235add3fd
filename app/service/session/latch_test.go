package session

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLatch(t *testing.T) {
	l := newLatch(false)
	assert.Equal(t, false, l.IsReleased())

	assert.Equal(t, true, l.Release())
	assert.Equal(t, false, l.Release())
	assert.Equal(t, true, l.IsReleased())

	<-l.Done()
}

func TestLatch_StartsReleased(t *testing.T) {
	l := newLatch(true)
	assert.Equal(t, true, l.IsReleased())
	assert.Equal(t, false, l.Release())
}
