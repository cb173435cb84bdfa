package common

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/staking-dashboard/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	hundred  = decimal.NewFromInt(100)
)

// FormatLargeNumber abbreviates a token amount for display.
// Example: 1500000 = "1.50M", 1234.567 = "1.23K", 999.5 = "999.5"
func FormatLargeNumber(value decimal.Decimal) string {
	switch {
	case value.GreaterThanOrEqual(billion):
		return value.Div(billion).StringFixed(2) + "B"
	case value.GreaterThanOrEqual(million):
		return value.Div(million).StringFixed(2) + "M"
	case value.GreaterThanOrEqual(thousand):
		return value.Div(thousand).StringFixed(2) + "K"
	}

	// Round first: CommafWithDigits truncates extra digits
	return humanize.CommafWithDigits(value.Round(2).InexactFloat64(), 2)
}

// ParseFormattedBalance converts a FormatLargeNumber string back to a number.
// Example: "1.50M" = 1500000
func ParseFormattedBalance(formatted string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(formatted, ",", ""))

	multiplier := decimal.NewFromInt(1)
	switch {
	case strings.Contains(s, "B"):
		s, multiplier = strings.ReplaceAll(s, "B", ""), billion
	case strings.Contains(s, "M"):
		s, multiplier = strings.ReplaceAll(s, "M", ""), million
	case strings.Contains(s, "K"):
		s, multiplier = strings.ReplaceAll(s, "K", ""), thousand
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse formatted balance '%s': %w", formatted, err)
	}
	return value.Mul(multiplier), nil
}

// FormatTimeRemaining humanizes a lock countdown.
// Example: 432000 = "5d 0h", 5400 = "1h 30m", 0 = "Ready"
func FormatTimeRemaining(seconds int64) string {
	if seconds <= 0 {
		return "Ready"
	}

	days := seconds / secondsPerDay
	hours := (seconds % secondsPerDay) / secondsPerHour
	minutes := (seconds % secondsPerHour) / secondsPerMinute

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// EstimateRewards projects rewards for a candidate stake amount.
// It is independent of the actual position: weekly is 7 days, monthly 30 days, yearly uses APR.
func EstimateRewards(amount, dailyRate, apr decimal.Decimal) model.EstimatedRewards {
	if !amount.IsPositive() {
		return model.EstimatedRewards{
			Daily:   decimal.Zero,
			Weekly:  decimal.Zero,
			Monthly: decimal.Zero,
			Yearly:  decimal.Zero,
		}
	}

	daily := amount.Mul(dailyRate)
	return model.EstimatedRewards{
		Daily:   daily,
		Weekly:  daily.Mul(decimal.NewFromInt(7)),
		Monthly: daily.Mul(decimal.NewFromInt(30)),
		Yearly:  amount.Mul(apr).Div(hundred),
	}
}

// PendingReward estimates the unclaimed reward of a position:
// max(0, now - lastUpdateTime) * rate * staked.
// Display estimate only; the program's own accounting is authoritative.
func PendingReward(now, lastUpdateTime int64, rate, staked decimal.Decimal) decimal.Decimal {
	if !staked.IsPositive() || lastUpdateTime == 0 {
		return decimal.Zero
	}

	elapsed := now - lastUpdateTime
	if elapsed < 0 {
		elapsed = 0
	}
	return decimal.NewFromInt(elapsed).Mul(rate).Mul(staked)
}

// RemainingLock returns max(0, lastUpdateTime + lockDuration - now).
// A zero lastUpdateTime means no lock was ever started.
func RemainingLock(lastUpdateTime, now, lockDuration int64) int64 {
	if lastUpdateTime == 0 {
		return 0
	}

	remaining := lastUpdateTime + lockDuration - now
	if remaining < 0 {
		return 0
	}
	return remaining
}
