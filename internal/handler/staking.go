package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"go.uber.org/zap"
)

// ClaimMessage is returned by the claim endpoint until the program supports claiming
const ClaimMessage = "Claim function coming soon!"

// StakingHandler serves the staking dashboard
type StakingHandler struct {
	session *staking.Session
	log     *zap.Logger
}

// NewStakingHandler creates a new StakingHandler
func NewStakingHandler(session *staking.Session, log *zap.Logger) *StakingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StakingHandler{session: session, log: log.Named("staking")}
}

// Snapshot handles GET /staking/snapshot
// @Summary      Get dashboard
// @Description  Returns balances, pending reward, lock countdown and recent activity of the connected wallet
// @Tags         staking
// @Produce      json
// @Success      200  {object}  model.DashboardResponse
// @Router       /staking/snapshot [get]
func (h *StakingHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Dashboard())
}

// Lock handles GET /staking/lock
// @Summary      Get lock state
// @Description  Returns the remaining lock time and whether unstaking is allowed
// @Tags         staking
// @Produce      json
// @Success      200  {object}  model.LockState
// @Router       /staking/lock [get]
func (h *StakingHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Lock())
}

// Estimate handles GET /staking/estimate
// @Summary      Estimate rewards
// @Description  Projects daily, weekly, monthly and yearly rewards for a candidate amount. Invalid amounts yield zeros.
// @Tags         staking
// @Produce      json
// @Param        amount  query     string  true  "Token amount"
// @Success      200     {object}  model.EstimateResponse
// @Router       /staking/estimate [get]
func (h *StakingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	amount := r.URL.Query().Get("amount")
	writeJSON(w, http.StatusOK, model.EstimateResponse{
		Amount:  amount,
		Rewards: h.session.Estimate(amount),
	})
}

// Max handles GET /staking/max
// @Summary      Get max amount
// @Description  Returns the wallet balance for stake or the staked amount for unstake, as shown in the input
// @Tags         staking
// @Produce      json
// @Param        kind  query     string  true  "stake or unstake"
// @Success      200   {object}  model.MaxAmountResponse
// @Failure      400   {object}  model.ErrorResponse
// @Router       /staking/max [get]
func (h *StakingHandler) Max(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	kind, err := model.ParseActionKind(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.session.MaxAmount(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.MaxAmountResponse{Kind: kind, Amount: amount.String()})
}

// Refresh handles POST /staking/refresh
// @Summary      Refresh now
// @Description  Triggers an immediate re-sync with the chain
// @Tags         staking
// @Produce      json
// @Success      202  {object}  model.DashboardResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /staking/refresh [post]
func (h *StakingHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.Refresh(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, h.session.Dashboard())
}

// Stake handles POST /staking/stake
// @Summary      Stake tokens
// @Description  Sends a stake instruction signed by the connected wallet
// @Tags         staking
// @Accept       json
// @Produce      json
// @Param        request  body      model.ActionRequest  true  "Amount in tokens"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /staking/stake [post]
func (h *StakingHandler) Stake(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.ActionStake)
}

// Unstake handles POST /staking/unstake
// @Summary      Unstake tokens
// @Description  Sends an unstake instruction; refused locally while the lock period is running
// @Tags         staking
// @Accept       json
// @Produce      json
// @Param        request  body      model.ActionRequest  true  "Amount in tokens"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /staking/unstake [post]
func (h *StakingHandler) Unstake(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.ActionUnstake)
}

// Claim handles POST /staking/claim
// @Summary      Claim rewards
// @Description  Not supported by the program yet
// @Tags         staking
// @Produce      json
// @Failure      501  {object}  model.ErrorResponse
// @Router       /staking/claim [post]
func (h *StakingHandler) Claim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	writeError(w, http.StatusNotImplemented, ClaimMessage)
}

func (h *StakingHandler) submit(w http.ResponseWriter, r *http.Request, kind model.ActionKind) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sig, actionErr := h.session.Submit(r.Context(), kind, req.Amount)
	if actionErr != nil {
		writeJSON(w, actionStatus(actionErr), model.ErrorResponse{
			Error:            actionErr.Message(),
			Code:             string(actionErr.Code),
			RemainingSeconds: actionErr.Remaining,
		})
		return
	}

	txID := sig.String()
	writeJSON(w, http.StatusOK, model.ActionResponse{
		TxID:       txID,
		Message:    fmt.Sprintf("Success! Transaction: %s...", txID[:8]),
		ClearInput: true,
	})
}

// actionStatus maps action failures onto HTTP status codes
func actionStatus(err *staking.ActionError) int {
	switch {
	case err.UserError():
		return http.StatusBadRequest
	case err.Code == staking.CodeBusy:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
