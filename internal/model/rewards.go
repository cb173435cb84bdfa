package model

import "github.com/shopspring/decimal"

// EstimatedRewards is a forward projection for a candidate stake amount.
// It is not the pending reward of the actual position.
type EstimatedRewards struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}
