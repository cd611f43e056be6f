package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/images"
	"github.com/jafarshop/storefront/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		m := metrics.New()

		st, err := openStores(ctx, cfg, m, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		var store images.Store
		if cfg.S3.Bucket != "" {
			s3Store, err := images.NewS3Store(ctx, cfg.S3, logger)
			if err != nil {
				return err
			}
			store = s3Store
		} else {
			logger.Warn("S3_BUCKET not set, image uploads are disabled")
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      api.NewRouter(cfg, st.repos, store, m, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Starting server",
				zap.String("port", cfg.Port),
				zap.String("environment", cfg.Environment),
				zap.String("storage", cfg.StorageDriver),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigChan:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
			return err
		}

		logger.Info("Server stopped")
		return nil
	},
}
