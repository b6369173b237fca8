// Carebridge is the backend daemon for the carebridge elder-safety
// assistant: it serves the conversation turn pipeline (intent
// classification, reply generation, voice synthesis) and the caregiver
// dashboard API.
//
// Usage:
//
//	carebridge [flags]
//	carebridge --config /path/to/carebridge.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/dashboard"
	"github.com/eldercare-labs/carebridge/internal/health"
	"github.com/eldercare-labs/carebridge/internal/intent"
	"github.com/eldercare-labs/carebridge/internal/llm/groq"
	"github.com/eldercare-labs/carebridge/internal/persona"
	"github.com/eldercare-labs/carebridge/internal/processor"
	"github.com/eldercare-labs/carebridge/internal/reply"
	"github.com/eldercare-labs/carebridge/internal/suggest"
	"github.com/eldercare-labs/carebridge/internal/telemetry"
	"github.com/eldercare-labs/carebridge/internal/transport"
	grpctransport "github.com/eldercare-labs/carebridge/internal/transport/grpc"
	httptransport "github.com/eldercare-labs/carebridge/internal/transport/http"
	"github.com/eldercare-labs/carebridge/internal/voice"
	"github.com/eldercare-labs/carebridge/internal/voice/elevenlabs"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/carebridge.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("carebridge %s\n", version)
		os.Exit(0)
	}

	// Load .env first so ${VAR} references in the config file resolve.
	_ = godotenv.Load()

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("carebridge starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Telemetry (no-op when disabled).
	telemetryShutdown, err := telemetry.Init(ctx, cfg.Telemetry, version)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer telemetryShutdown()

	// Persona tables drive intents, prompts, fallbacks and suggestions.
	tables := persona.MustLoad()

	// Chat-completion backend. Without a credential the pipeline still
	// runs; every turn is answered from the fallback tables.
	llmClient := groq.New(cfg.LLM)
	defer llmClient.Close()
	if !cfg.LLM.Configured() {
		slog.Warn("no LLM credential configured — replies will use local fallbacks")
	}

	// Voice synthesis is optional; a nil synthesizer disables it.
	var synthesizer voice.Synthesizer
	if cfg.TTS.Enabled && cfg.TTS.ElevenLabs.APIKey != "" {
		synthesizer = elevenlabs.New(cfg.TTS.ElevenLabs)
		defer synthesizer.Close()
		slog.Info("using ElevenLabs voice synthesis", "model", cfg.TTS.ElevenLabs.Model)
	} else {
		slog.Info("voice synthesis disabled")
	}

	// Assemble the turn pipeline.
	classifier := intent.NewClassifier(llmClient, tables)
	generator := reply.NewGenerator(llmClient, tables, reply.Options{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	suggestions := suggest.New(tables)
	proc := processor.New(classifier, generator, synthesizer, suggestions)

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.HTTP.Enabled {
		transports = append(transports,
			httptransport.New(cfg.Transports.HTTP, suggestions, dashboard.New()))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}

	if len(transports) == 0 {
		slog.Error("no transports enabled — enable at least one in config")
		os.Exit(1)
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, proc.Process); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("carebridge ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("carebridge stopped")
}
