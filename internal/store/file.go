package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/gofrs/flock"

	"jobtrack/internal/model"
)

// seenFile is the persisted shape: one field holding every recorded id.
type seenFile struct {
	SeenIDs []string `json:"seen_ids"`
}

// FileStore keeps the seen-set in memory and mirrors it to a JSON file.
// Every change rewrites the whole file; entries are never removed. A lock
// file guards the path against a second process.
type FileStore struct {
	path   string
	lock   *flock.Flock
	seen   map[string]struct{}
	logger *slog.Logger
}

var _ model.SeenStore = (*FileStore)(nil)

// NewFileStore loads the seen-set at path. A missing file starts an empty
// set, and so does an unreadable or malformed one, so construction only
// fails when the lock cannot be acquired.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking seen file %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("seen file %s is in use by another process", path)
	}

	s := &FileStore{
		path:   path,
		lock:   lock,
		seen:   make(map[string]struct{}),
		logger: logger,
	}
	s.load()
	return s, nil
}

// load reads the persisted set. Missing and corrupt files both yield an
// empty set; the store always comes up usable.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no seen file yet, starting with an empty set", "path", s.path)
		} else {
			s.logger.Warn("could not read seen file, starting with an empty set", "path", s.path, "error", err)
		}
		return
	}

	var f seenFile
	if err := json.Unmarshal(data, &f); err != nil {
		s.logger.Warn("seen file is corrupt, starting with an empty set", "path", s.path, "error", err)
		return
	}

	for _, id := range f.SeenIDs {
		s.seen[id] = struct{}{}
	}
	s.logger.Debug("seen file loaded", "path", s.path, "ids", len(s.seen))
}

// Contains reports whether id has been recorded.
func (s *FileStore) Contains(id string) (bool, error) {
	_, ok := s.seen[id]
	return ok, nil
}

// AddAll merges ids into the set and rewrites the file when the set grew.
// On a write failure the in-memory set keeps the new ids; durability
// catches up on the next successful write.
func (s *FileStore) AddAll(ids []string) error {
	before := len(s.seen)
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
	if len(s.seen) == before {
		return nil
	}
	return s.save()
}

// save writes the full set to a temp file and renames it into place.
func (s *FileStore) save() error {
	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(seenFile{SeenIDs: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seen file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing seen file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing seen file: %w", err)
	}
	return nil
}

// Count returns the number of recorded ids.
func (s *FileStore) Count() (int, error) {
	return len(s.seen), nil
}

// Backend identifies the backing file for the stats surface.
func (s *FileStore) Backend() string {
	return s.path
}

// Close releases the lock file.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}
