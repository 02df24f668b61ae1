package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"auctioneer/internal/api/handlers"
	"auctioneer/internal/config"
	"auctioneer/internal/observer"
	"auctioneer/internal/server"
	"auctioneer/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: auction-server <port>")
		os.Exit(1)
	}

	port, err := strconv.Atoi(os.Args[1])
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintln(os.Stderr, "Invalid port number.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New()
	log.Info("Starting auctioneer server", "port", port, "config", cfg.String())

	hub := observer.NewHub(log)
	store := server.NewAuctionStateStore(log)

	listener, err := net.Listen("tcp", net.JoinHostPort(cfg.Server.Host, strconv.Itoa(port)))
	if err != nil {
		log.Fatal("Failed to create listen socket", "port", port, "error", err)
	}

	acceptor := server.NewConnectionAcceptor(listener, store, hub, log)
	go acceptor.Run()

	// Admin surface: health, status and the observer event feed.
	var admin *echo.Echo
	if cfg.Admin.Enabled {
		admin = echo.New()
		admin.HideBanner = true
		admin.Use(middleware.Recover())

		handlers.NewStatusHandler(store, hub, log).Register(admin)

		adminAddr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Admin.Port))
		go func() {
			log.Info("Starting admin server", "address", adminAddr)
			if err := admin.Start(adminAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Admin server failed", "error", err)
			}
		}()
	}

	// Periodic status report in the server log.
	statusCron := cron.New()
	_, err = statusCron.AddFunc(fmt.Sprintf("@every %s", cfg.Status.ReportInterval), func() {
		snap := store.Snapshot()
		log.Info("Server status",
			"phase", snap.Phase,
			"round_id", snap.RoundID,
			"bids_recorded", snap.BidsRecorded,
			"target_bid_count", snap.TargetBidCount,
			"rounds_completed", snap.RoundsCompleted,
			"observers", hub.ObserverCount())
	})
	if err != nil {
		log.Error("Failed to schedule status report", "error", err)
	} else {
		statusCron.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down auctioneer server...")

	statusCron.Stop()
	listener.Close()
	hub.Close()

	if admin != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := admin.Shutdown(ctx); err != nil {
			log.Error("Admin server forced to shutdown", "error", err)
		}
	}

	log.Info("Auctioneer server stopped")
}
