package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/client/clienttest"
	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWallet struct{}

func (stubWallet) Address() (string, string, error) { return "addr", "", nil }

func (stubWallet) Unlock() (client.Signer, error) { return clienttest.NewSigner(), nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	session := staking.NewSession(clienttest.NewRPC(), staking.Options{
		ProgramID: solana.MustPublicKeyFromBase58(config.DefaultProgramID),
		Mint:      solana.MustPublicKeyFromBase58(config.DefaultMint),
	}, nil, nil)
	t.Cleanup(session.Close)

	router, err := SetupRouter(Dependencies{
		Session: session,
		Wallet:  stubWallet{},
		Metrics: observability.NewMetrics("test"),
	})
	require.NoError(t, err)
	return router
}

func TestSetupRouter_RequiresDependencies(t *testing.T) {
	_, err := SetupRouter(Dependencies{})
	assert.Error(t, err)
}

func TestSetupRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/wallet", http.StatusOK},
		{http.MethodGet, "/staking/snapshot", http.StatusOK},
		{http.MethodGet, "/staking/lock", http.StatusOK},
		{http.MethodGet, "/staking/estimate?amount=5", http.StatusOK},
		{http.MethodPost, "/staking/claim", http.StatusNotImplemented},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSetupRouter_SwaggerDocument(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/staking/unstake")
}

func TestSetupRouter_SwaggerDocumentMatchesRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	apiRoutes := []string{
		"/wallet",
		"/wallet/connect",
		"/wallet/disconnect",
		"/staking/snapshot",
		"/staking/lock",
		"/staking/estimate",
		"/staking/max",
		"/staking/refresh",
		"/staking/stake",
		"/staking/unstake",
		"/staking/claim",
		"/staking/stream",
	}
	documented := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		documented = append(documented, path)
	}
	assert.ElementsMatch(t, apiRoutes, documented)

	for path, methods := range doc.Paths {
		for method := range methods {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(strings.ToUpper(method), path, nil))
			assert.NotEqual(t, http.StatusNotFound, rec.Code, "%s %s", method, path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", method, path)
		}
	}
}
