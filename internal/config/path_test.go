package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("MONEDERO_TEST_DIR", "/tmp/monedero")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain path", in: "/var/db/monedero.db", want: "/var/db/monedero.db"},
		{name: "tilde prefix", in: "~/data/monedero.db", want: filepath.Join(home, "data/monedero.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$MONEDERO_TEST_DIR/monedero.db", want: "/tmp/monedero/monedero.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
