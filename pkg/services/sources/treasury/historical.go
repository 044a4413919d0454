package treasury

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tawsil-ops/ops-atlas/pkg/adapters"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
	"github.com/tawsil-ops/ops-atlas/pkg/store/sqlite/snapshot"
)

// SnapshotReader reads locally persisted treasury snapshots. Found reports
// whether any snapshot existed at or before the instant.
type SnapshotReader interface {
	ClosestBefore(ctx context.Context, asOf time.Time) (*sources.TreasurySummary, bool, error)
}

// HistoricalSource answers historical queries from the remote ledger first
// and falls back to locally persisted snapshots when the remote has no
// history for the instant. Current-summary calls always go remote.
type HistoricalSource struct {
	remote    sources.TreasurySource
	snapshots SnapshotReader
}

func NewHistoricalSource(remote sources.TreasurySource, snapshots SnapshotReader) *HistoricalSource {
	return &HistoricalSource{remote: remote, snapshots: snapshots}
}

func (s *HistoricalSource) GetSummary(ctx context.Context) (*sources.TreasurySummary, error) {
	return s.remote.GetSummary(ctx)
}

func (s *HistoricalSource) GetSummaryAt(ctx context.Context, asOf time.Time) (*sources.TreasurySummary, error) {
	summary, err := s.remote.GetSummaryAt(ctx, asOf)
	if err == nil {
		return summary, nil
	}

	if s.snapshots == nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Err(err).
		Time("as_of", asOf).
		Msg("remote treasury history unavailable, trying local snapshots")

	local, found, lookupErr := s.snapshots.ClosestBefore(ctx, asOf)
	if lookupErr != nil || !found {
		return nil, err
	}
	return local, nil
}

// StoreReader adapts the sqlite snapshot store to the SnapshotReader
// contract.
type StoreReader struct {
	store snapshot.Store
}

func NewStoreReader(store snapshot.Store) *StoreReader {
	return &StoreReader{store: store}
}

func (r *StoreReader) ClosestBefore(ctx context.Context, asOf time.Time) (*sources.TreasurySummary, bool, error) {
	snap, found, err := r.store.ClosestBefore(ctx, asOf)
	if err != nil || !found {
		return nil, false, err
	}
	summary, err := adapters.MapStoreSnapshotToTreasurySummary(snap)
	if err != nil {
		return nil, false, err
	}
	return summary, true, nil
}
