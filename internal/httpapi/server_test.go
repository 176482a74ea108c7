package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bourse/internal/core"
	"bourse/internal/ledger"
	"bourse/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(engine Engine) http.Handler {
	s := &Server{engine: engine}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/deposit", s.handleDeposit)
	mux.HandleFunc("POST /account/withdraw", s.handleWithdraw)
	mux.HandleFunc("POST /account/send", s.handleSend)
	mux.HandleFunc("POST /order", s.handleOrder)
	mux.HandleFunc("POST /balance", s.handleBalance)
	mux.HandleFunc("GET /orderbook", s.handleOrderBook)
	mux.HandleFunc("GET /txlog", s.handleTxLog)
	mux.HandleFunc("GET /accounts", s.handleAccounts)
	return mux
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleDepositThenBalance(t *testing.T) {
	eng := platform.New()
	mux := newTestMux(eng)

	rec := doRequest(t, mux, http.MethodPost, "/account/deposit", AccountUpdateRequest{Signer: "a", Amount: 100})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/balance", BalanceRequest{Signer: "a"})
	require.Equal(t, http.StatusOK, rec.Code)

	var balance uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, uint64(100), balance)
}

func TestHandleBalanceUnknownAccountIs404(t *testing.T) {
	eng := platform.New()
	mux := newTestMux(eng)

	rec := doRequest(t, mux, http.MethodPost, "/balance", BalanceRequest{Signer: "nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleOrderZeroAmountIs400(t *testing.T) {
	eng := platform.New()
	mux := newTestMux(eng)
	_ = doRequest(t, mux, http.MethodPost, "/account/deposit", AccountUpdateRequest{Signer: "a", Amount: 100})

	rec := doRequest(t, mux, http.MethodPost, "/order", core.Order{Signer: "a", Side: core.Buy, Price: 10, Amount: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSendOverfundedIs409(t *testing.T) {
	eng := platform.New()
	mux := newTestMux(eng)
	_ = doRequest(t, mux, http.MethodPost, "/account/deposit", AccountUpdateRequest{Signer: "a", Amount: 1})
	_ = doRequest(t, mux, http.MethodPost, "/account/deposit", AccountUpdateRequest{Signer: "b", Amount: ^uint64(0)})

	rec := doRequest(t, mux, http.MethodPost, "/account/send", SendRequest{Sender: "a", Recipient: "b", Amount: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleAccountsOrderBookTxLog(t *testing.T) {
	eng := platform.New()
	mux := newTestMux(eng)
	_ = doRequest(t, mux, http.MethodPost, "/account/deposit", AccountUpdateRequest{Signer: "a", Amount: 100})
	_ = doRequest(t, mux, http.MethodPost, "/order", core.Order{Signer: "a", Side: core.Buy, Price: 10, Amount: 5})

	rec := doRequest(t, mux, http.MethodGet, "/accounts", nil)
	var accounts map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	assert.Equal(t, uint64(100), accounts["a"])

	rec = doRequest(t, mux, http.MethodGet, "/orderbook", nil)
	var book []core.PartialOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	require.Len(t, book, 1)
	assert.Equal(t, "a", book[0].Signer)

	rec = doRequest(t, mux, http.MethodGet, "/txlog", nil)
	var txs []core.Tx
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, core.TxDeposit, txs[0].Kind)
}

// TestStatusForMapsLedgerErrorKinds pins the status mapping statusFor
// relies on, independent of any particular handler.
func TestStatusForMapsLedgerErrorKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(&ledger.Error{Kind: ledger.AccountNotFound}))
	assert.Equal(t, http.StatusConflict, statusFor(&ledger.Error{Kind: ledger.AccountUnderFunded}))
	assert.Equal(t, http.StatusConflict, statusFor(&ledger.Error{Kind: ledger.AccountOverFunded}))
	assert.Equal(t, http.StatusBadRequest, statusFor(platform.ErrInvalidOrder))
}
