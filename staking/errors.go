package staking

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/internal/program"
)

// ErrorCode is the closed set of action failure classes
type ErrorCode string

const (
	CodeNoWallet            ErrorCode = "NoWallet"
	CodeInvalidAmount       ErrorCode = "InvalidAmount"
	CodeLockActive          ErrorCode = "LockActive"
	CodeBusy                ErrorCode = "Busy"
	CodeUserRejected        ErrorCode = "UserRejected"
	CodeInsufficientBalance ErrorCode = "InsufficientBalance"
	CodeLockPeriodNotMet    ErrorCode = "LockPeriodNotMet"
	CodeOverMaxStake        ErrorCode = "OverMaxStake"
	CodeInsufficientFunds   ErrorCode = "InsufficientFunds"
	CodeUnknown             ErrorCode = "Unknown"
)

// minLockDays is shown in lock messages
const minLockDays = 7

// ActionError is returned by Submit. Remaining is set for lock related codes.
type ActionError struct {
	Code      ErrorCode
	Kind      model.ActionKind
	Remaining int64
	Err       error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user
func (e *ActionError) Message() string {
	switch e.Code {
	case CodeNoWallet:
		return "Please connect your wallet"
	case CodeInvalidAmount:
		return "Please enter a valid amount"
	case CodeLockActive:
		return fmt.Sprintf("Please wait %s before unstaking. Minimum lock period: %d days",
			common.FormatTimeRemaining(e.Remaining), minLockDays)
	case CodeBusy:
		return "Another transaction is in progress."
	case CodeUserRejected:
		return "Transaction was cancelled."
	case CodeInsufficientBalance:
		return "Insufficient balance."
	case CodeLockPeriodNotMet:
		return fmt.Sprintf("Minimum lock period not met. Please wait %s before unstaking.",
			common.FormatTimeRemaining(e.Remaining))
	case CodeOverMaxStake:
		return "Stake amount exceeds the maximum allowed by the program."
	case CodeInsufficientFunds:
		return "Insufficient staked funds."
	default:
		return "Transaction failed."
	}
}

// UserError reports whether the failure was caught before reaching the chain
func (e *ActionError) UserError() bool {
	switch e.Code {
	case CodeNoWallet, CodeInvalidAmount, CodeLockActive:
		return true
	}
	return false
}

func newActionError(code ErrorCode, kind model.ActionKind, err error) *ActionError {
	return &ActionError{Code: code, Kind: kind, Err: err}
}

// Program error codes as they appear in simulation logs
var (
	overMaxStakeHex      = fmt.Sprintf("custom program error: 0x%x", program.ErrCodeOverMaxStake)
	insufficientFundsHex = fmt.Sprintf("custom program error: 0x%x", program.ErrCodeInsufficientFunds)
)

// classify maps a chain or signer error onto an ActionError.
// This is the only place raw error text is inspected.
func classify(kind model.ActionKind, remaining int64, err error) *ActionError {
	msg := err.Error()

	code := CodeUnknown
	switch {
	case strings.Contains(msg, "User rejected"):
		code = CodeUserRejected
	case strings.Contains(msg, "LockPeriodNotMet"):
		code = CodeLockPeriodNotMet
	case strings.Contains(msg, "OverMaxStake") || strings.Contains(msg, overMaxStakeHex):
		code = CodeOverMaxStake
	case strings.Contains(msg, "InsufficientFunds") || strings.Contains(msg, insufficientFundsHex):
		code = CodeInsufficientFunds
	case strings.Contains(strings.ToLower(msg), "insufficient"):
		code = CodeInsufficientBalance
	}

	actionErr := newActionError(code, kind, err)
	if code == CodeLockPeriodNotMet {
		actionErr.Remaining = remaining
	}
	return actionErr
}
