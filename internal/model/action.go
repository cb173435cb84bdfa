package model

import "fmt"

// ActionKind is the staking instruction a user submits
type ActionKind string

const (
	ActionStake   ActionKind = "stake"
	ActionUnstake ActionKind = "unstake"
)

// ParseActionKind validates a kind coming from a request
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case ActionStake, ActionUnstake:
		return ActionKind(s), nil
	}
	return "", fmt.Errorf("kind must be stake or unstake")
}

// ActionRequest represents request for POST /staking/stake and /staking/unstake
type ActionRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ActionResponse represents response for POST /staking/stake and /staking/unstake
type ActionResponse struct {
	TxID       string `json:"txId"`
	Message    string `json:"message"`
	ClearInput bool   `json:"clearInput"`
}

// MaxAmountResponse represents response for GET /staking/max
type MaxAmountResponse struct {
	Kind   ActionKind `json:"kind"`
	Amount string     `json:"amount"`
}
