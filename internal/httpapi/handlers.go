package httpapi

import (
	"encoding/json"
	"net/http"

	"bourse/internal/core"

	"github.com/rs/zerolog/log"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Encoding failure means the headers are already written; there is
		// nothing left to do but note it happened.
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req AccountUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := s.engine.Deposit(req.Signer, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, tx)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req AccountUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tx, err := s.engine.Withdraw(req.Signer, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, tx)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	withdrawTx, depositTx, err := s.engine.Send(req.Sender, req.Recipient, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, [2]core.Tx{withdrawTx, depositTx})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)

	var order core.Order
	if !decodeJSON(w, r, &order) {
		return
	}
	receipt, err := s.engine.Order(order)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, receipt)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	var req BalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	balance, err := s.engine.BalanceOf(req.Signer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, balance)
}

func (s *Server) handleOrderBook(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.OrderBook())
}

func (s *Server) handleTxLog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.TxLog())
}

func (s *Server) handleAccounts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.Accounts())
}
