//go:build unix

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockSerializesOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	first, err := Open(path, Options{Lock: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	acquired := make(chan *File, 1)
	errs := make(chan error, 1)
	go func() {
		second, err := Open(path, Options{Lock: true})
		if err != nil {
			errs <- err
			return
		}
		acquired <- second
	}()

	select {
	case <-acquired:
		t.Fatal("second Open acquired the lock while the first held it")
	case err := <-errs:
		t.Fatalf("second Open() error = %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case second := <-acquired:
		second.Close()
	case err := <-errs:
		t.Fatalf("second Open() error = %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("second Open did not acquire the lock after release")
	}
}

func TestAtomicOverwriteKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0640); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, Options{Atomic: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Overwrite([]byte("[]")); err != nil {
		t.Fatalf("Overwrite() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0640 {
		t.Errorf("mode after atomic overwrite: got %o, want 640", got)
	}
}
