package deck

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Layout of a deck directory.
const (
	CSSDir = "static/css"
	ImgDir = "static/img"
)

// Workspace is the temporary directory a deck is built in. It lives next to
// the destination so Publish can move it into place with a rename.
type Workspace struct {
	Root      string
	dest      string
	published bool
}

// NewWorkspace creates an empty workspace for a deck that will be published
// to dest.
func NewWorkspace(dest string) (*Workspace, error) {
	dest = filepath.Clean(dest)
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output parent directory: %w", err)
	}
	root, err := os.MkdirTemp(parent, "."+filepath.Base(dest)+"-build-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	for _, dir := range []string{CSSDir, ImgDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			_ = os.RemoveAll(root)
			return nil, fmt.Errorf("failed to create workspace: %w", err)
		}
	}
	return &Workspace{Root: root, dest: dest}, nil
}

// Path returns the absolute path of rel inside the workspace.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// ImagePath is the directory plot images go to.
func (w *Workspace) ImagePath() string {
	return w.Path(ImgDir)
}

// WriteFile creates rel and lets write fill it.
func (w *Workspace) WriteFile(rel string, write func(io.Writer) error) error {
	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", rel, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// CopyFile copies src into dir of the workspace and returns its base name.
func (w *Workspace) CopyFile(src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	name := filepath.Base(src)
	err = w.WriteFile(filepath.Join(dir, name), func(out io.Writer) error {
		_, err := io.Copy(out, in)
		return err
	})
	return name, err
}

// Contents lists the workspace files, slash separated and sorted, and their
// total size.
func (w *Workspace) Contents() ([]string, int64, error) {
	var files []string
	var size int64
	err := filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(w.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		size += info.Size()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workspace: %w", err)
	}
	sort.Strings(files)
	return files, size, nil
}

// Publish moves the workspace to its destination. An existing destination
// is replaced only once the new deck is in place; if the move fails the old
// directory is restored.
func (w *Workspace) Publish() error {
	if w.published {
		return fmt.Errorf("workspace already published to %s", w.dest)
	}
	if err := os.Chmod(w.Root, 0o755); err != nil {
		return fmt.Errorf("failed to publish deck: %w", err)
	}

	var backup string
	if _, err := os.Lstat(w.dest); err == nil {
		backup = fmt.Sprintf("%s.old-%d", w.dest, time.Now().UnixNano())
		if err := os.Rename(w.dest, backup); err != nil {
			return fmt.Errorf("failed to move previous output aside: %w", err)
		}
	}

	if err := os.Rename(w.Root, w.dest); err != nil {
		if backup != "" {
			_ = os.Rename(backup, w.dest)
		}
		return fmt.Errorf("failed to publish deck: %w", err)
	}
	w.published = true

	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("deck published but old output %s was not removed: %w", backup, err)
		}
	}
	return nil
}

// Destination is where Publish moves the deck.
func (w *Workspace) Destination() string {
	return w.dest
}

// Close removes the workspace unless it was published.
func (w *Workspace) Close() error {
	if w.published {
		return nil
	}
	return os.RemoveAll(w.Root)
}
