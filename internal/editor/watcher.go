package editor

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls an icon file for changes made in an editor
type FileWatcher struct {
	path     string
	interval time.Duration
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{
		path:     path,
		interval: 500 * time.Millisecond,
	}
}

// WatchResult contains the result of watching a file
type WatchResult struct {
	Path     string
	Modified bool
	Error    error
}

// WaitForChange blocks until the file is modified or ctx is done. The file
// is followed through symlinks.
func (w *FileWatcher) WaitForChange(ctx context.Context) WatchResult {
	initialInfo, err := os.Stat(w.path)
	if err != nil {
		return WatchResult{Path: w.path, Error: err}
	}
	initialModTime := initialInfo.ModTime()
	initialSize := initialInfo.Size()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return WatchResult{Path: w.path, Error: ctx.Err()}
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue // Editors may replace the file on save
			}

			if info.ModTime() != initialModTime || info.Size() != initialSize {
				return WatchResult{Path: w.path, Modified: true}
			}
		}
	}
}
