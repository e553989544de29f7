// Package watch re-runs a callback whenever a schema file changes on disk,
// using fsnotify the way the teacher's own watch command does.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Run blocks, invoking onChange once immediately and again after every
// write to path, until the watcher errors or the caller's onChange
// returns a non-nil error (which Run then returns).
func Run(path string, onChange func() error) error {
	if err := onChange(); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
