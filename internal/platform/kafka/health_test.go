package kafka

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker(t *testing.T) {
	t.Run("reachable broker", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		h := NewHealthChecker("127.0.0.1:1, " + ln.Addr().String())
		assert.NoError(t, h.Check(context.Background()))
	})

	t.Run("no brokers configured", func(t *testing.T) {
		err := NewHealthChecker(" , ").Check(context.Background())
		assert.EqualError(t, err, "kafka brokers not configured")
	})

	t.Run("unreachable broker", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		err = NewHealthChecker(addr).Check(context.Background())
		assert.ErrorContains(t, err, "no kafka brokers reachable")
	})

	assert.Equal(t, "kafka", NewHealthChecker("").Name())
}
