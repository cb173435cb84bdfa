package model

// LockState is the derived withdrawal window of a position
type LockState struct {
	RemainingSeconds int64  `json:"remainingSeconds"`
	CanUnstake       bool   `json:"canUnstake"`
	UnlocksAt        int64  `json:"unlocksAt"` // unix seconds, 0 when no lock was ever started
	Remaining        string `json:"remaining"` // e.g. "5d 0h" or "Ready"
}

// Unlocked is the lock state of a wallet without a position
func Unlocked() LockState {
	return LockState{CanUnstake: true, Remaining: "Ready"}
}
