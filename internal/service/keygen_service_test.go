package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueKeyGenerator(t *testing.T) {
	gen := NewUniqueKeyGenerator()

	t.Run("addresses are unique and opaque", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			addr, err := gen.NewAddress()
			require.NoError(t, err)
			assert.Len(t, addr, 32)
			assert.False(t, seen[addr], "duplicate address %s", addr)
			seen[addr] = true
		}
	})

	t.Run("api keys are unique", func(t *testing.T) {
		a, err := gen.NewAPIKey()
		require.NoError(t, err)
		b, err := gen.NewAPIKey()
		require.NoError(t, err)
		assert.Len(t, a, 64) // 32 bytes = 64 hex chars
		assert.NotEqual(t, a, b)
	})
}
