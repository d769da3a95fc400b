package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-a", "-config"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "separate value",
			args: []string{"-a", ":8080", "-x", "junk"},
			want: []string{"-a", ":8080"},
		},
		{
			name: "equals form",
			args: []string{"-config=conf.json", "-b=1"},
			want: []string{"-config=conf.json"},
		},
		{
			name: "flag followed by another flag keeps only the flag",
			args: []string{"-a", "-config", "conf.json"},
			want: []string{"-a", "-config", "conf.json"},
		},
		{
			name: "nothing allowed",
			args: []string{"-z", "1", "positional"},
			want: []string{},
		},
		{
			name: "empty input",
			args: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}

func TestJSONConfigFile(t *testing.T) {
	t.Run("long flag", func(t *testing.T) {
		withArgs(t, []string{"cmd", "-config", "server.json"})
		assert.Equal(t, "server.json", JSONConfigFile())
	})

	t.Run("short flag", func(t *testing.T) {
		withArgs(t, []string{"cmd", "-c=server.json"})
		assert.Equal(t, "server.json", JSONConfigFile())
	})

	t.Run("absent", func(t *testing.T) {
		withArgs(t, []string{"cmd", "-a", ":9090"})
		assert.Equal(t, "", JSONConfigFile())
	})
}

func withArgs(t *testing.T, args []string) {
	t.Helper()
	old := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = old })
}
