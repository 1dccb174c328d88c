package search_test

import (
	"testing"
	"time"

	"github.com/greywing/caissa/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestClockNeverExpiresWithZeroDeadline(t *testing.T) {
	var c search.Clock
	assert.False(t, c.Expired())
}

func TestClockExpiresPastDeadline(t *testing.T) {
	c := search.Clock{Deadline: time.Now().Add(-time.Millisecond)}
	assert.True(t, c.Expired())
}

func TestClockTickInvokesYieldAtBoundedSpacing(t *testing.T) {
	calls := 0
	c := search.Clock{Yield: func() { calls++ }}

	c.Tick() // first call always yields (zero last time)
	c.Tick() // immediate second call should not yield again
	assert.Equal(t, 1, calls)

	time.Sleep(35 * time.Millisecond)
	c.Tick()
	assert.Equal(t, 2, calls)
}
