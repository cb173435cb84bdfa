package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// Code carries the action error class (e.g. "LockActive") when one applies.
type ErrorResponse struct {
	Error            string `json:"error"`
	Code             string `json:"code,omitempty"`
	RemainingSeconds int64  `json:"remainingSeconds,omitempty"`
}
