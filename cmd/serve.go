package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/logging"
	"github.com/Yates-Labs/roam/internal/server"
	"github.com/Yates-Labs/roam/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the itinerary planner over HTTP",
	Long: `Serve the itinerary planner as a JSON API.

Every client gets its own session (tracked with a cookie), so a generated
itinerary and its PDF are only visible to the browser that requested them.

Examples:
  roam serve
  roam serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch, err := newOrchestrator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logger.Info("starting roam",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("api_key", logging.MaskAPIKey(cfg.LLM.APIKey)),
		zap.String("font_dir", cfg.Render.FontDir))

	store := session.NewStore(cfg.Server.SessionTTL)
	srv := server.New(orch, store, logger, server.Options{
		SessionTTL:     cfg.Server.SessionTTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
