// Command server runs the trading platform behind the HTTP/JSON
// boundary described by spec.md §6.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"bourse/internal/httpapi"
	"bourse/internal/platform"

	"github.com/rs/zerolog/log"
)

func main() {
	address := flag.String("address", "0.0.0.0", "address to bind the HTTP server to")
	port := flag.Int("port", 9001, "port to bind the HTTP server to")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	eng := platform.New()
	srv := httpapi.New(*address, *port, eng)

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}
}
