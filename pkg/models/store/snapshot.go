package store

import "time"

// TreasurySnapshot is one persisted treasury balance observation. Balances
// are stored as decimal strings to avoid float drift in the database.
type TreasurySnapshot struct {
	TakenAt    time.Time
	BalanceCFA string
	BalanceMAD string
	GlobalCFA  string
	GlobalMAD  string
}
