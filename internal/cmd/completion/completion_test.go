package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "mdreveal"}
	root.AddCommand(NewCmdCompletion())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewCmdCompletion(t *testing.T) {
	cmd := NewCmdCompletion()
	assert.Equal(t, "completion", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
		assert.Contains(t, sub.Long, "mdreveal completion "+sub.Name())
		assert.Equal(t, "  "+findShell(t, sub.Name()).load, sub.Example)
	}
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, names)
}

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{shell: "bash", marker: "bash completion"},
		{shell: "zsh", marker: "compdef _mdreveal mdreveal"},
		{shell: "fish", marker: "complete -c mdreveal"},
		{shell: "powershell", marker: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := execute(t, "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.marker)
		})
	}
}

func TestCompletionRejectsArguments(t *testing.T) {
	for _, sh := range shells {
		t.Run(sh.name, func(t *testing.T) {
			_, err := execute(t, "completion", sh.name, "extra")
			require.Error(t, err)
			assert.Contains(t, err.Error(), `unknown command "extra"`)
		})
	}
}

func findShell(t *testing.T, name string) shell {
	t.Helper()
	for _, sh := range shells {
		if sh.name == name {
			return sh
		}
	}
	t.Fatalf("no shell %q", name)
	return shell{}
}
