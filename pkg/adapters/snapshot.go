package adapters

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/store"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
)

func MapTreasurySummaryToStoreSnapshot(summary *sources.TreasurySummary, takenAt time.Time) store.TreasurySnapshot {
	return store.TreasurySnapshot{
		TakenAt:    takenAt,
		BalanceCFA: summary.TotalBalanceCFA.String(),
		BalanceMAD: summary.TotalBalanceMAD.String(),
		GlobalCFA:  summary.TotalGlobalCFA.String(),
		GlobalMAD:  summary.TotalGlobalMAD.String(),
	}
}

func MapStoreSnapshotToTreasurySummary(snapshot *store.TreasurySnapshot) (*sources.TreasurySummary, error) {
	balanceCFA, err := decimal.NewFromString(snapshot.BalanceCFA)
	if err != nil {
		return nil, err
	}
	balanceMAD, err := decimal.NewFromString(snapshot.BalanceMAD)
	if err != nil {
		return nil, err
	}
	globalCFA, err := decimal.NewFromString(snapshot.GlobalCFA)
	if err != nil {
		return nil, err
	}
	globalMAD, err := decimal.NewFromString(snapshot.GlobalMAD)
	if err != nil {
		return nil, err
	}

	return &sources.TreasurySummary{
		TotalBalanceCFA: balanceCFA,
		TotalBalanceMAD: balanceMAD,
		TotalGlobalCFA:  globalCFA,
		TotalGlobalMAD:  globalMAD,
	}, nil
}
