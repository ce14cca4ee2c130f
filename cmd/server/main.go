// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/leseb/pdfrag/pkg/adapters/http"
	mcpAdapter "github.com/leseb/pdfrag/pkg/adapters/mcp"
	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/core/api"
	"github.com/leseb/pdfrag/pkg/core/config"
	"github.com/leseb/pdfrag/pkg/core/engine"
	"github.com/leseb/pdfrag/pkg/core/state"
	"github.com/leseb/pdfrag/pkg/observability/logging"
	_ "github.com/leseb/pdfrag/pkg/source/filesystem"
	_ "github.com/leseb/pdfrag/pkg/source/s3"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	mcpMode := flag.Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
	mockLLM := flag.Bool("mock-llm", false, "Answer with a canned mock instead of calling a model")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Print version
	if *version {
		fmt.Printf("pdfrag\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	if err := run(*configPath, *port, *mcpMode, *mockLLM); err != nil {
		fmt.Fprintf(os.Stderr, "pdfrag: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int, mcpMode, mockLLM bool) error {
	// Load configuration
	cfg, usingDefaults, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	// Initialize logger; stdout belongs to the protocol in MCP mode
	logCfg := cfg.Logging
	if mcpMode {
		logCfg.Output = os.Stderr
	}
	logger := logging.New(logCfg)
	logger.Info("Starting pdfrag",
		"version", Version,
		"build_time", BuildTime)
	if usingDefaults {
		logger.Warn("Config file not found, using defaults", "path", configPath)
	}

	// Initialize text generator
	var llm api.TextGenerator
	if mockLLM {
		llm = api.NewMockClient("")
		logger.Warn("Using mock text generator")
	} else {
		if cfg.Engine.ModelEndpoint == "" && cfg.Engine.APIKey == "" {
			logger.Warn("No model endpoint or API key configured; set OPENAI_API_KEY or OPENAI_API_ENDPOINT")
		}
		client := api.NewOpenAIClient(api.ClientOptions{
			BaseURL:   cfg.Engine.ModelEndpoint,
			APIKey:    cfg.Engine.APIKey,
			Model:     cfg.Engine.Model,
			MaxTokens: cfg.Engine.MaxTokens,
		})
		llm = client
		logger.Info("Initialized model client", "endpoint", cfg.Engine.ModelEndpoint, "model", client.Model())
	}

	// Initialize session and engine
	strategy, err := chunking.ParseStrategy(cfg.Chunking.Strategy)
	if err != nil {
		return err
	}
	eng, err := engine.New(llm, state.NewSession(strategy), engine.Options{
		Chunking: cfg.Chunking.Options,
		Timeout:  cfg.Engine.Timeout,
		SourceParams: map[string]string{
			"base_dir":  cfg.Source.BaseDir,
			"region":    cfg.Source.S3Region,
			"endpoint":  cfg.Source.S3Endpoint,
			"max_bytes": strconv.FormatInt(cfg.Source.MaxBytes, 10),
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	logger.Info("Initialized engine", "strategy", string(strategy))
	if cfg.Source.BaseDir == "" && !mcpMode {
		logger.Warn("source.base_dir is not set; file imports over HTTP are disabled")
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpMode {
		return mcpAdapter.NewServer(eng, logger, Version).Serve(ctx, os.Stdin, os.Stdout)
	}
	return serveHTTP(ctx, cfg, eng, logger)
}

// loadConfig reads the config file, falling back to defaults only when the
// file does not exist. usingDefaults reports that fallback.
func loadConfig(path string) (cfg *config.Config, usingDefaults bool, err error) {
	cfg, err = config.Load(path)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func serveHTTP(ctx context.Context, cfg *config.Config, eng *engine.Engine, logger *logging.Logger) error {
	handler := httpAdapter.New(eng, logger, cfg.Source.MaxBytes)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout + cfg.Engine.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal or a listener failure
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}
