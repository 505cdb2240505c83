package store

import "jobtrack/internal/model"

// NopStore is a no-op store used in dry-run mode. It never records
// anything, so every posting appears new on each cycle.
type NopStore struct{}

var _ model.SeenStore = (*NopStore)(nil)

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Contains(id string) (bool, error) { return false, nil }
func (s *NopStore) AddAll(ids []string) error        { return nil }
func (s *NopStore) Count() (int, error)              { return 0, nil }
func (s *NopStore) Backend() string                  { return "none" }
func (s *NopStore) Close() error                     { return nil }
