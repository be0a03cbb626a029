package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Legacy-Engineers/medusa/internal/config"
	"github.com/Legacy-Engineers/medusa/internal/logger"
	"github.com/Legacy-Engineers/medusa/internal/server"
	"github.com/Legacy-Engineers/medusa/internal/store"
	"github.com/Legacy-Engineers/medusa/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("Medusa - Lightning Fast Key-Value Store")

	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	log.Info("Medusa starting",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Int("max_connections", cfg.Server.MaxConnections),
		zap.Bool("timeouts", cfg.Server.EnableTimeouts),
	)

	db := store.NewStore()

	if cfg.Metrics.Enabled {
		telemetry.RegisterKeyGauge(func() float64 { return float64(db.Len()) })

		metricsAddr := net.JoinHostPort(cfg.Server.Host, cfg.Metrics.Port)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", telemetry.MetricsHandler())
			log.Info("metrics endpoint up", zap.String("address", metricsAddr))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	engine := server.NewEngine(db, log)
	srv := server.NewServer(engine, cfg, log)

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error("listener error", zap.Error(err))
		return
	}
	log.Info("listening on", zap.String("address", address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Serve(listener); err != nil {
			log.Error("serve error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down...")

	listener.Close() //nolint:errcheck

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		srv.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("All connections closed gracefully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timed out, forcing exit", zap.Duration("timeout", 5*time.Second))
	}

	log.Info("Medusa stopped")
}
