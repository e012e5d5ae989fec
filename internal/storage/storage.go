// Package storage owns the backing store file for one invocation: it reads
// the whole file before any mutation and rewrites the whole file afterwards.
//
// The default rewrite truncates and writes the file in place, so an
// interrupted write can leave it truncated. Options.Atomic writes a side
// file, syncs it and renames it into place instead. Options.Lock serializes
// invocations on the same store through an advisory lock on a sidecar
// "<path>.lock" file; the lock lives on the sidecar so it stays valid when an
// atomic rewrite replaces the store file itself.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options controls how the store file is opened and rewritten.
type Options struct {
	// Lock takes an exclusive advisory lock for the lifetime of the File.
	Lock bool
	// Atomic rewrites through a temporary file and rename.
	Atomic bool
}

// File is an open store file.
type File struct {
	path string
	opts Options
	file *os.File
	lock *os.File
}

// Open opens path for reading and writing, creating it if absent.
// With opts.Lock it blocks until the store lock is held.
func Open(path string, opts Options) (*File, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}

	s := &File{path: path, opts: opts}
	if opts.Lock {
		lock, err := os.OpenFile(LockPath(path), os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			return nil, fmt.Errorf("open lock file: %w", err)
		}
		if err := lockFile(lock); err != nil {
			lock.Close()
			return nil, fmt.Errorf("lock store: %w", err)
		}
		s.lock = lock
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		s.releaseLock()
		return nil, fmt.Errorf("open store file: %w", err)
	}
	s.file = file
	return s, nil
}

// LockPath returns the sidecar lock file path for a store path.
func LockPath(path string) string {
	return path + ".lock"
}

// Path returns the store file path.
func (s *File) Path() string {
	return s.path
}

// ReadAll returns the entire current contents of the store file.
func (s *File) ReadAll() ([]byte, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek store file: %w", err)
	}
	data, err := io.ReadAll(s.file)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return data, nil
}

// Overwrite replaces the entire contents of the store file with data.
func (s *File) Overwrite(data []byte) error {
	if s.opts.Atomic {
		return writeAtomic(s.path, data)
	}
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate store file: %w", err)
	}
	if _, err := s.file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync store file: %w", err)
	}
	return nil
}

// Close closes the store file and releases the lock.
func (s *File) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.file != nil {
		err = s.file.Close()
		s.file = nil
	}
	if lockErr := s.releaseLock(); err == nil {
		err = lockErr
	}
	return err
}

func (s *File) releaseLock() error {
	if s.lock == nil {
		return nil
	}
	err := unlockFile(s.lock)
	if closeErr := s.lock.Close(); err == nil {
		err = closeErr
	}
	s.lock = nil
	return err
}

// writeAtomic writes data to a temporary file next to path, syncs it and
// renames it into place. The replacement keeps the permission bits of the
// existing file.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create temporary store file: %w", err)
	}
	// The create mode is filtered by the umask.
	if err := file.Chmod(mode); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("chmod temporary store file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temporary store file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temporary store file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temporary store file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename store file into place: %w", err)
	}

	if dir, err := os.Open(filepath.Dir(path)); err == nil {
		dir.Sync()
		dir.Close()
	}
	return nil
}
