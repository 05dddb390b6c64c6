package configcmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdreveal/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, f := range fields {
		if f.env != "" {
			t.Setenv(f.env, "")
		}
	}
	t.Setenv("REVEAL_JS_URL", "")
}

func showJSON(t *testing.T, configPath string) map[string][2]string {
	t.Helper()
	var buf bytes.Buffer
	err := runShow(commonOptions{configPath: configPath, output: "json", noColor: true, writer: &buf})
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	result := make(map[string][2]string)
	for _, row := range rows {
		result[row["key"]] = [2]string{row["value"], row["source"]}
	}
	return result
}

func TestRunShow_Sources(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	cfg := &config.Config{Theme: "night", SlideNumbers: true}
	require.NoError(t, cfg.Save(configPath))
	t.Setenv("MDREVEAL_TRANSITION", "fade")

	got := showJSON(t, configPath)

	assert.Equal(t, [2]string{"night", "config"}, got["theme"])
	assert.Equal(t, [2]string{"fade", "MDREVEAL_TRANSITION"}, got["transition"])
	assert.Equal(t, [2]string{"true", "config"}, got["slide_numbers"])
	assert.Equal(t, [2]string{"true", "default"}, got["controls"])
	assert.Equal(t, [2]string{"pygments", "default"}, got["highlight_style"])
	assert.Equal(t, [2]string{"(built-in)", "default"}, got["title_slide_template"])
	assert.Len(t, got, len(fields))
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	var buf bytes.Buffer
	configPath := filepath.Join(t.TempDir(), "missing.yml")

	err := runShow(commonOptions{configPath: configPath, noColor: true, writer: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(not found)")
	assert.Contains(t, buf.String(), "simple")
}

func TestRunShow_BrokenConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: [x\n"), 0600))

	err := runShow(commonOptions{configPath: configPath, noColor: true, writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestRunShow_InvalidOutputFormat(t *testing.T) {
	err := runShow(commonOptions{configPath: "x.yml", output: "xml", writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
