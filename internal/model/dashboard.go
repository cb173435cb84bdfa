package model

import "github.com/shopspring/decimal"

// DashboardResponse represents response for GET /staking/snapshot and stream frames
type DashboardResponse struct {
	Address        string          `json:"address"`
	Connected      bool            `json:"connected"`
	Fetching       bool            `json:"fetching"`
	WalletBalance  string          `json:"walletBalance"` // abbreviated, e.g. "1.50M"
	StakedBalance  string          `json:"stakedBalance"`
	RewardBalance  string          `json:"rewardBalance"`
	RewardRate     decimal.Decimal `json:"rewardRate"`
	LastUpdateTime int64           `json:"lastUpdateTime"`
	Lock           LockState       `json:"lock"`
	Activity       []ActivityEntry `json:"activity"`
	Error          string          `json:"error,omitempty"`
	Raw            Snapshot        `json:"raw"`
}

// EstimateResponse represents response for GET /staking/estimate
type EstimateResponse struct {
	Amount  string           `json:"amount"`
	Rewards EstimatedRewards `json:"rewards"`
}
