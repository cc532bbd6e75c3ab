package zone

import (
	"io/fs"
	"iter"
	"path/filepath"

	"assetsync/internal/services"
)

// Entry is one regular file found under the mirror root.
type Entry struct {
	Path   string
	Name   string
	Intent Intent
}

// TraversalError reports a path that could not be read. Traversal continues
// past it.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return "read " + e.Path + ": " + e.Err.Error()
}

func (e *TraversalError) Unwrap() []error {
	return []error{services.ErrTraversal, e.Err}
}

// Walk lazily yields every regular file under the layout root with its
// intent. Unreadable paths are yielded as *TraversalError values and the walk
// moves on. The state directory is skipped. The next entry is not read until
// the consumer's loop body returns.
func (l Layout) Walk() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		stop := false
		_ = filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
			if stop {
				return filepath.SkipAll
			}
			if err != nil {
				if !yield(Entry{}, &TraversalError{Path: path, Err: err}) {
					stop = true
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path == l.State {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			entry := Entry{Path: path, Name: d.Name(), Intent: l.Classify(path)}
			if !yield(entry, nil) {
				stop = true
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Names returns the set of regular file names anywhere under the root.
// Unreadable directories are passed over.
func (l Layout) Names() map[string]struct{} {
	names := make(map[string]struct{})
	for entry, err := range l.Walk() {
		if err != nil {
			continue
		}
		names[entry.Name] = struct{}{}
	}
	return names
}
