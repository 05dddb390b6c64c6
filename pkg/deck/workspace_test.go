package deck

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestWorkspaceLayout(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "talk")
	ws, err := NewWorkspace(dest)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, filepath.Dir(dest), filepath.Dir(ws.Root))
	assert.True(t, strings.HasPrefix(filepath.Base(ws.Root), ".talk-build-"))
	assert.DirExists(t, ws.ImagePath())
	assert.DirExists(t, ws.Path(CSSDir))
	assert.Equal(t, dest, ws.Destination())
}

func TestWorkspacePublishReplacesOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stale.html"), []byte("old"), 0o644))

	ws, err := NewWorkspace(dest)
	require.NoError(t, err)
	require.NoError(t, ws.WriteFile(IndexFile, writeString("new")))
	require.NoError(t, ws.Publish())
	require.NoError(t, ws.Close())

	data, err := os.ReadFile(filepath.Join(dest, IndexFile))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, filepath.Join(dest, "stale.html"))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out", entries[0].Name())

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	assert.Error(t, ws.Publish())
}

func TestWorkspaceCloseKeepsPreviousOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, IndexFile), []byte("old"), 0o644))

	ws, err := NewWorkspace(dest)
	require.NoError(t, err)
	require.NoError(t, ws.WriteFile(IndexFile, writeString("half")))
	require.NoError(t, ws.Close())

	assert.NoDirExists(t, ws.Root)
	data, err := os.ReadFile(filepath.Join(dest, IndexFile))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestWorkspaceContents(t *testing.T) {
	ws, err := NewWorkspace(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteFile("static/img/a.svg", writeString("<svg/>")))
	require.NoError(t, ws.WriteFile(IndexFile, writeString("page")))

	files, size, err := ws.Contents()
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "static/img/a.svg"}, files)
	assert.Equal(t, int64(10), size)
}
