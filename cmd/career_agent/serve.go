package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/identity"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/observability"
	"github.com/jonathan/career-guide/internal/server"
)

var (
	servePort        int
	serveApplySchema bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the career assessment, recommendation and roadmap endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT, else 8080)")
	serveCmd.Flags().BoolVar(&serveApplySchema, "apply-schema", false, "Create tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtCfg, err := cfg.JWTConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveApplySchema {
		if err := database.ApplySchema(ctx); err != nil {
			return err
		}
		log.Info("schema applied")
	}

	svc, client, err := newGuidance(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	observability.InitMetrics()

	srv := server.New(server.Config{
		Port:            cfg.Port,
		AllowedOrigins:  config.ParseOrigins(cfg.CORSAllowOrigins),
		RateLimitPerMin: cfg.RateLimitPerMin,
		QuestionCount:   cfg.FollowUpQuestionCount,
		ReadTimeout:     cfg.HTTPReadTimeout,
		WriteTimeout:    cfg.HTTPWriteTimeout,
		ShutdownTimeout: cfg.ServerShutdownTimeout,
	}, database, svc, identity.NewJWTVerifier(jwtCfg), log)

	return srv.Start(ctx)
}
