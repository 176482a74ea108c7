// Package httpapi exposes a Platform over the HTTP/JSON boundary spec.md
// §6 defines: one endpoint per ledger, book and journal operation, each
// taking and returning a small JSON document.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bourse/internal/core"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Engine is the surface Server needs from the trading platform. It is
// satisfied by *platform.Platform; httpapi depends on this interface
// rather than the concrete type so handlers can be tested against a
// fake.
type Engine interface {
	Deposit(signer string, amount uint64) (core.Tx, error)
	Withdraw(signer string, amount uint64) (core.Tx, error)
	Send(sender, recipient string, amount uint64) (core.Tx, core.Tx, error)
	Order(order core.Order) (core.Receipt, error)
	BalanceOf(signer string) (uint64, error)
	Accounts() map[string]uint64
	OrderBook() []core.PartialOrder
	TxLog() []core.Tx
}

const shutdownGrace = 5 * time.Second

// Server wraps an http.Server bound to engine's endpoint table.
type Server struct {
	address string
	port    int
	engine  Engine
	cancel  context.CancelFunc

	httpServer *http.Server
}

// New returns a Server that will listen on address:port once Run is
// called.
func New(address string, port int, engine Engine) *Server {
	return &Server{
		address: address,
		port:    port,
		engine:  engine,
	}
}

func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run builds the route table, starts listening, and blocks until ctx is
// cancelled, at which point it shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/deposit", s.handleDeposit)
	mux.HandleFunc("POST /account/withdraw", s.handleWithdraw)
	mux.HandleFunc("POST /account/send", s.handleSend)
	mux.HandleFunc("POST /order", s.handleOrder)
	mux.HandleFunc("POST /balance", s.handleBalance)
	mux.HandleFunc("GET /orderbook", s.handleOrderBook)
	mux.HandleFunc("GET /txlog", s.handleTxLog)
	mux.HandleFunc("GET /accounts", s.handleAccounts)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.address, s.port),
		Handler: withRequestLogging(mux),
	}

	t.Go(func() error {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server running")
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	t.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return t.Wait()
}
