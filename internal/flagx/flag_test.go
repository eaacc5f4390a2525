package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-g", "http://x:1", "-v"},
			allowed: []string{"-g"},
			want:    []string{"-g", "http://x:1"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-x", "1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: []string{"-z"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-g", "-i", "5"},
			allowed: []string{"-g"},
			want:    []string{"-g"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	old := os.Args
	t.Cleanup(func() { os.Args = old })

	os.Args = []string{"app", "-c", "conf.json"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"app", "-config", "other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"app"}
	require.Equal(t, "", JsonConfigFlags())
}
