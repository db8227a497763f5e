// Package store persists named blobs for the editor: the current graph and
// its undo history. Backends are interchangeable behind Store.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Keys used by the editor.
const (
	KeyGraph   = "graph"
	KeyHistory = "history"
)

// ErrNotFound is returned by Get and Delete for a missing key.
var ErrNotFound = errors.New("key not found")

// Store is a get/set blob store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	List() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string // file or database path; defaults under DataDir
	Encrypt  bool   // file backend only
	Compress bool
}

// DataDir returns ~/.config/pathseek, honouring XDG_CONFIG_HOME.
func DataDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pathseek")
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case "", BackendFile:
		path := opts.Path
		if path == "" {
			name := "graph.json"
			if opts.Encrypt {
				name = "graph.enc"
			}
			path = filepath.Join(DataDir(), name)
		}
		if opts.Encrypt {
			s = NewEncryptedFileStore(path)
		} else {
			s = NewFileStore(path)
		}
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			path = filepath.Join(DataDir(), "pathseek.db")
		}
		s, err = OpenSQLite(path)
		if err != nil {
			return nil, err
		}
	case BackendMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", opts.Backend)
	}

	if opts.Compress {
		c, err := Compressed(s)
		if err != nil {
			s.Close()
			return nil, err
		}
		return c, nil
	}
	return s, nil
}
