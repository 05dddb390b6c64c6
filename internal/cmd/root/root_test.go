package root

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"build", "import", "list", "init", "config", "completion"}, names)

	for _, flag := range []string{"config", "output", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "mdreveal version dev")
}

func TestNewCmdRoot_ConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	cmd := NewCmdRoot()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"config", "path", "--config", path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, path+"\n", buf.String())
}

func TestNewCmdRoot_Build(t *testing.T) {
	for _, name := range []string{"MDREVEAL_THEME", "MDREVEAL_TRANSITION", "MDREVEAL_HIGHLIGHT_STYLE"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	input := filepath.Join(dir, "talk.md")
	require.NoError(t, os.WriteFile(input, []byte("# A\n\nx\n\n# B\n\ny\n"), 0o644))
	out := filepath.Join(dir, "site")

	cmd := NewCmdRoot()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"build", input, "-d", out, "-t", "night", "--no-color", "--config", filepath.Join(dir, "none.yml")})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.Contains(t, buf.String(), "Built 2 slides")
}
