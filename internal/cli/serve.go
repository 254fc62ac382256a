package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/outcall/internal/infra/transport"
	"github.com/vietddude/outcall/internal/orchestrate"
	"github.com/vietddude/outcall/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the call orchestrator as an HTTP service",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	initLogging(cfg)

	tr := transport.NewHTTPTransport()
	orch := orchestrate.New(tr, orchestrate.Config{
		MaxRetries: cfg.Call.MaxRetriesOrDefault(),
		BaseDelay:  time.Duration(cfg.Call.BaseDelayMillis) * time.Millisecond,
		Jitter:     cfg.Call.Jitter,
	}, slog.Default())

	srv := service.NewServer(orch, tr.Monitor(), cfg.Server.Port, cfg.Call.TimeoutMillis, slog.Default())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped gracefully")
}
