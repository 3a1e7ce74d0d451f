package sqlite

import (
	"context"
)

// CleanupScheduler deletes finished (complete or failed) actions of a scheduler group and
// returns the number of rows removed. It is a no-op when the bookkeeping tables are absent.
func (s *Store) CleanupScheduler(ctx context.Context, group string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.tablesExist(ctx, "scheduler_actions", "scheduler_groups")
	if err != nil || !ok {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM scheduler_actions
WHERE group_id IN (SELECT group_id FROM scheduler_groups WHERE slug = ?)
AND status IN ('complete', 'failed')`, group)
	if err != nil {
		return 0, storageError(err, "cleanup scheduler actions").WithContext("group", group).Build()
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError(err, "cleanup scheduler actions").Build()
	}
	return n, nil
}

// EnsureSchedulerTables recreates the bookkeeping tables if they were dropped.
func (s *Store) EnsureSchedulerTables(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, schedulerSchema); err != nil {
		return storageError(err, "create scheduler tables").Build()
	}
	return nil
}

func (s *Store) tablesExist(ctx context.Context, names ...string) (bool, error) {
	for _, name := range names {
		var n int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
		if err != nil {
			return false, storageError(err, "inspect schema").WithContext("table", name).Build()
		}
		if n == 0 {
			return false, nil
		}
	}
	return true, nil
}
