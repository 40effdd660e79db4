package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/4tenlab/prism-insight/internal/api"
	"github.com/4tenlab/prism-insight/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "시그널 API 서버 시작",
	Long: `발행된 시그널 리포트를 서빙하는 REST API 서버를 시작합니다.

Endpoints:
  GET /health                      - Health check
  GET /api/signals/latest          - 최신 리포트
  GET /api/signals/{mode}/{date}   - 날짜별 리포트 (YYYYMMDD)

Example:
  go run ./cmd/prism api
  go run ./cmd/prism api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: 설정값)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Prism Insight API Server ===")

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	signalHandler := handlers.NewSignalHandler(cfg.Batch.OutputDir, log)
	router := api.NewRouter(signalHandler, log)
	server := api.New(cfg.Port, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/signals/latest")
	fmt.Println("  GET /api/signals/{mode}/{date}")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
