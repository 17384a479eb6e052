package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hootroost/app/auth"
	"hootroost/app/config"
	"hootroost/app/routes"
)

// RunServer serves the hoot API until SIGINT or SIGTERM and returns an exit code.
func RunServer(cfg *config.Config) int {
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		log.Printf("Failed to listen on %s: %v", cfg.Server.Addr, err)
		return 1
	}

	router := routes.SetupRoutes(store, auth.NewVerifier(cfg.Auth.JWTSecret))
	log.Printf("Starting hootroost on %s", ln.Addr())
	if err := serve(ctx, ln, router, cfg.Server.ShutdownTimeout); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	log.Println("Server stopped")
	return 0
}

// serve runs handler on ln until ctx is done, then shuts down gracefully,
// giving in-flight requests up to timeout to finish.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, timeout time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
