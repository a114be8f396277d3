package types

// LockTimeBlockLimit separates the two interpretations of a lock time:
// values below it are block heights, values at or above it are unix timestamps.
const LockTimeBlockLimit = 500_000_000

// BlockHeight is the height of a block in the chain.
type BlockHeight uint64

// Timestamp is a unix timestamp in seconds.
type Timestamp uint64

// Clock is the ledger time against which maturity is evaluated. It is taken
// from the latest block reported by the explorer.
type Clock struct {
	Height    BlockHeight `json:"height"`
	Timestamp Timestamp   `json:"timestamp"`
}

// Reached reports whether a lock time has passed on this clock.
func (c Clock) Reached(lockTime uint64) bool {
	if lockTime < LockTimeBlockLimit {
		return uint64(c.Height) >= lockTime
	}
	return uint64(c.Timestamp) >= lockTime
}

// Confirmations returns how many blocks have been built on top of height,
// counting the block itself. Zero for heights above the clock.
func (c Clock) Confirmations(height BlockHeight) uint64 {
	if height > c.Height {
		return 0
	}
	return uint64(c.Height-height) + 1
}
