package configcmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{name: "default", expected: "/tmp/mdreveal/config.yml\n"},
		{name: "plain", output: "plain", expected: "/tmp/mdreveal/config.yml\n"},
		{name: "json", output: "json", expected: "{\"path\": \"/tmp/mdreveal/config.yml\"}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runPath(commonOptions{configPath: "/tmp/mdreveal/config.yml", output: tt.output, noColor: true, writer: &buf})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRunPath_InvalidFormat(t *testing.T) {
	err := runPath(commonOptions{configPath: "x", output: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "path", "clear"}, names)
}
