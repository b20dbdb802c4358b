package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	require.Equal(t, "events:0xabc", RedisKey(PfxEvents, "0xabc"))
}

func TestGetPrefix(t *testing.T) {
	tests := []struct {
		key string
		exp string
	}{
		{"events", ""},
		{"events:0xabc", "events"},
		{"probe:1:0xabc:0x80ac58cd", "probe:1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.exp, GetPrefix(tt.key), tt.key)
	}
}
