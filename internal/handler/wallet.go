package handler

import (
	"net/http"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"go.uber.org/zap"
)

// WalletSource provides the local wallet: its address without decryption and a signer on unlock
type WalletSource interface {
	Address() (address, qr string, err error)
	Unlock() (client.Signer, error)
}

// WalletHandler connects the local keystore wallet to the staking session
type WalletHandler struct {
	source  WalletSource
	session *staking.Session
	log     *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(source WalletSource, session *staking.Session, log *zap.Logger) *WalletHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{source: source, session: session, log: log.Named("wallet")}
}

// Get handles GET /wallet
// @Summary      Get wallet
// @Description  Returns the keystore address, its QR code and whether it is connected
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, qr, err := h.source.Address()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.WalletResponse{
		Address:   address,
		Connected: h.session.Connected(),
		QR:        qr,
	})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Unlocks the keystore with the password entered at startup and starts syncing the staking position
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	signer, err := h.source.Unlock()
	if err != nil {
		h.log.Warn("failed to unlock keystore", zap.Error(err))
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.session.Connect(signer); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.WalletResponse{
		Address:   signer.PublicKey().String(),
		Connected: true,
	})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Stops syncing and wipes the unlocked key; the last snapshot stays readable
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.session.Disconnect()
	writeJSON(w, http.StatusOK, model.WalletResponse{Connected: false})
}
