package store

import "github.com/waytodrive/orderadmin/internal/domain/model"

// ApplySnapshotForTest exposes applySnapshot to the external test package.
func (s *Store) ApplySnapshotForTest(orders []model.Order) { s.applySnapshot(orders) }

// ApplyFeedErrorForTest exposes applyFeedError to the external test package.
func (s *Store) ApplyFeedErrorForTest(err error) { s.applyFeedError(err) }
