package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  Alice  ", "alice"},
		{"BOB smith", "bob smith"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeName(tt.in))
	}
}

func TestSameName(t *testing.T) {
	require.True(t, SameName("Alice", " alice "))
	require.True(t, SameName("BOB", "bob"))
	require.False(t, SameName("alice", "bob"))
}
