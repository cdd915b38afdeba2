package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"SeqSearch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := viper.GetString("port")
		dataDir := viper.GetString("data_dir")
		logger := slog.Default()

		logger.Info("starting seqsearch server",
			"version", Version,
			"port", port,
			"data_dir", dataDir,
		)

		mgr, err := server.NewIndexManager(dataDir, logger)
		if err != nil {
			return fmt.Errorf("initialize index manager: %w", err)
		}

		handler := server.NewHandler(mgr, logger)
		mux := http.NewServeMux()
		handler.RegisterRoutes(mux)
		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"status":"ok"}`)
		})

		srv := &http.Server{
			Addr:         ":" + port,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			done <- srv.Shutdown(ctx)
		}()

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return <-done
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "listen port")
	serveCmd.Flags().String("data-dir", "data", "directory for persisted indices")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("data_dir", serveCmd.Flags().Lookup("data-dir"))
}
