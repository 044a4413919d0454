package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tawsil-ops/ops-atlas/pkg/models/store"
	"github.com/tawsil-ops/ops-atlas/pkg/store/sqlite"
)

// Store persists treasury snapshots taken on each aggregation pass so the
// 30-day evolution has history even when the remote ledger offers none.
type Store interface {
	Add(ctx context.Context, snapshot store.TreasurySnapshot) error
	ClosestBefore(ctx context.Context, asOf time.Time) (*store.TreasurySnapshot, bool, error)
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) Add(ctx context.Context, snapshot store.TreasurySnapshot) error {
	query := `
		INSERT OR REPLACE INTO treasury_snapshots (
			taken_at, balance_cfa, balance_mad, global_cfa, global_mad
		) VALUES (?, ?, ?, ?, ?)`

	tx := sqlite.GetTransaction(ctx)
	var err error
	if tx == nil {
		_, err = s.db.ExecContext(ctx, query,
			snapshot.TakenAt, snapshot.BalanceCFA, snapshot.BalanceMAD,
			snapshot.GlobalCFA, snapshot.GlobalMAD)
	} else {
		_, err = tx.ExecContext(ctx, query,
			snapshot.TakenAt, snapshot.BalanceCFA, snapshot.BalanceMAD,
			snapshot.GlobalCFA, snapshot.GlobalMAD)
	}

	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) ClosestBefore(ctx context.Context, asOf time.Time) (*store.TreasurySnapshot, bool, error) {
	query := `
		SELECT taken_at, balance_cfa, balance_mad, global_cfa, global_mad
		FROM treasury_snapshots
		WHERE taken_at <= ?
		ORDER BY taken_at DESC
		LIMIT 1`

	var snapshot store.TreasurySnapshot
	err := s.db.QueryRowContext(ctx, query, asOf).Scan(
		&snapshot.TakenAt,
		&snapshot.BalanceCFA,
		&snapshot.BalanceMAD,
		&snapshot.GlobalCFA,
		&snapshot.GlobalMAD,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}
	return &snapshot, true, nil
}
