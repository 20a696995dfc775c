package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mnlocal/jobhub/internal/config"
	httpx "github.com/mnlocal/jobhub/internal/http"
	"github.com/mnlocal/jobhub/internal/http/handlers"
	"github.com/mnlocal/jobhub/internal/observability"
	"github.com/mnlocal/jobhub/internal/repo/jsonfile"
	"github.com/mnlocal/jobhub/internal/uploads"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "jobhub", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	files, err := uploads.New(cfg.UploadsDir, log)
	if err != nil {
		log.Error("uploads dir init failed", "err", err)
		os.Exit(1)
	}

	usersRepo, err := jsonfile.NewUsersRepo(cfg.UsersFile, files, log, prom)
	if err != nil {
		log.Error("users store init failed", "err", err)
		os.Exit(1)
	}

	messagesRepo, err := jsonfile.NewMessagesRepo(cfg.MessagesFile, usersRepo, prom)
	if err != nil {
		log.Error("messages store init failed", "err", err)
		os.Exit(1)
	}

	commands := handlers.NewCommandHandler(usersRepo, usersRepo, messagesRepo, log)
	static := handlers.NewStaticHandler(cfg.WebRoot, cfg.UploadsDir)

	router := httpx.NewRouter(httpx.RouterDeps{
		Log:      log,
		Cfg:      cfg,
		Registry: reg,
		Prom:     prom,
		Commands: commands,
		Static:   static,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second, // uploads ride in the request body
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
