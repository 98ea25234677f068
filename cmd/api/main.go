package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/llm"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/repository"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
)

const serviceName = "travel-planner"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
	defer db.Close()

	generator, err := llm.New(&cfg.Generator)
	if err != nil {
		return err
	}
	defer llm.Close(generator)

	sessions, closeSessions, err := bootstrap.OpenSessionStore(ctx, &cfg.Session)
	if err != nil {
		return err
	}
	defer closeSessions()

	planner := service.NewPlannerService(
		repository.NewTripRepository(db),
		repository.NewFeedbackRepository(db),
		generator,
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		SessionTTL:  cfg.Session.TTL,
		DB:          db,
		Planner:     planner,
		Sessions:    sessions,
	})

	srv := newServer(":"+cfg.Server.Port, router)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", serviceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Println("shutting down...")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the HTTP server. Request contexts are not tied to the
// signal context, so Shutdown lets in-flight plans finish.
func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return context.Background()
		},
	}
}
