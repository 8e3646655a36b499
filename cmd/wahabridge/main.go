package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wahabridge/internal/config"
	"wahabridge/internal/constants"
	"wahabridge/internal/service"
	"wahabridge/internal/tracing"
	"wahabridge/internal/transcoder"
	"wahabridge/pkg/chatbot"
	"wahabridge/pkg/waha"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// CLI flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging (includes message content)")
	configPath = flag.String("config", "config.json", "Path to configuration file")
	version    = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("wahabridge %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"version": Version,
		"build":   BuildTime,
		"commit":  GitCommit,
	}).Info("Starting wahabridge")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.Info("Verbose logging enabled - message content will be logged")
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
	}

	tracingManager := tracing.NewTracingManager(tracing.TracingConfig{
		ServiceName:    "wahabridge",
		ServiceVersion: Version,
		Environment:    cfg.Tracing.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
		UseStdout:      cfg.Tracing.UseStdout,
	}, logger)

	if err := tracingManager.Initialize(ctx); err != nil {
		logger.Warnf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tracingManager.Shutdown(context.Background()); err != nil {
			logger.Warnf("Failed to shutdown tracing: %v", err)
		}
	}()

	gateway := waha.NewClient(cfg.Gateway.APIBaseURL, cfg.Gateway.APIKey, time.Duration(cfg.Gateway.TimeoutSec)*time.Second)

	var chatbotClient chatbot.Client
	if cfg.Chatbot.Enabled {
		chatbotClient = chatbot.NewClient(cfg.Chatbot.APIBaseURL, time.Duration(cfg.Chatbot.TimeoutSec)*time.Second)
		logger.WithField("url", cfg.Chatbot.APIBaseURL).Info("Chatbot dispatch enabled")
	} else {
		logger.Info("Chatbot dispatch disabled, pipeline will relay without dispatching")
	}

	mediaTranscoder := transcoder.New(cfg.Vertex, cfg.Gateway.APIBaseURL, gateway, logger)
	pipeline := service.NewPipelineService(cfg, gateway, chatbotClient, mediaTranscoder, logger)

	srv := NewServer(cfg, pipeline, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultGracefulShutdownSec*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
