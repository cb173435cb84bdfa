package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityStatus is the outcome of an on-chain transaction
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFail    ActivityStatus = "fail"
)

// ActivityEntry is one recent transaction touching the user's position
type ActivityEntry struct {
	Signature string         `json:"signature"`
	Slot      uint64         `json:"slot"`
	BlockTime int64          `json:"blockTime"` // unix seconds, 0 if not yet known
	Status    ActivityStatus `json:"status"`
}

// Snapshot is the reconciled view of the chain for one wallet.
// It is replaced wholesale on every refresh cycle and never mutated in place.
type Snapshot struct {
	WalletAddress  string          `json:"walletAddress"`
	WalletBalance  decimal.Decimal `json:"walletBalance"`
	StakedAmount   decimal.Decimal `json:"stakedAmount"`
	LastUpdateTime int64           `json:"lastUpdateTime"` // 0 = no position ever opened
	RewardRate     decimal.Decimal `json:"rewardRate"`
	MaxStake       decimal.Decimal `json:"maxStake"`
	PendingReward  decimal.Decimal `json:"pendingReward"`
	Activity       []ActivityEntry `json:"activity"`
	FetchError     string          `json:"fetchError,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewSnapshot returns the safe default snapshot shown before the first fetch
func NewSnapshot(rewardRate decimal.Decimal) Snapshot {
	return Snapshot{
		WalletBalance: decimal.Zero,
		StakedAmount:  decimal.Zero,
		RewardRate:    rewardRate,
		MaxStake:      decimal.Zero,
		PendingReward: decimal.Zero,
		Activity:      []ActivityEntry{},
	}
}

// Clone returns a copy that shares no slices with s
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Activity = make([]ActivityEntry, len(s.Activity))
	copy(out.Activity, s.Activity)
	return out
}

// HasPosition reports whether the wallet ever opened a position
func (s Snapshot) HasPosition() bool {
	return s.LastUpdateTime != 0
}
