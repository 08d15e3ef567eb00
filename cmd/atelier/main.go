// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atelier-ai/atelier/pkg/assistant"
	"github.com/atelier-ai/atelier/pkg/config"
	"github.com/atelier-ai/atelier/pkg/llm"
	ateliermcp "github.com/atelier-ai/atelier/pkg/mcp"
	"github.com/atelier-ai/atelier/pkg/telemetry"
	"github.com/atelier-ai/atelier/pkg/vector/ollama"
	"github.com/atelier-ai/atelier/pkg/vector/qdrant"
	"github.com/atelier-ai/atelier/pkg/vision"
	"github.com/atelier-ai/atelier/pkg/websearch"
)

const version = "0.3.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(fmt.Errorf("failed to load config: %w", err))
	}

	logger := telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	telOpts := []telemetry.Option{telemetry.WithExporter(cfg.Telemetry.Exporter)}
	if cfg.Telemetry.OTLPEndpoint != "" {
		telOpts = append(telOpts, telemetry.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint))
	}
	if cfg.Telemetry.OTLPInsecure {
		telOpts = append(telOpts, telemetry.WithOTLPInsecure())
	}
	shutdown, err := telemetry.Init("atelier", version, telOpts...)
	if err != nil {
		fatal(fmt.Errorf("failed to initialize telemetry: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	switch args[0] {
	case "chat":
		runChat(ctx, cfg, args[1:])
	case "mcp":
		runMCP(ctx, cfg)
	case "health":
		runHealth(ctx, cfg)
	case "version":
		fmt.Println("atelier", version)
	case "help":
		printUsage()
	default:
		fatal(fmt.Errorf("unknown command %q", args[0]))
	}
}

// buildService wires the collaborators declared in the config. A missing
// provider credential leaves the service in fallback mode rather than
// failing startup.
func buildService(cfg *config.Config) *assistant.Service {
	opts := []assistant.Option{
		assistant.WithModel(cfg.LLM.Model),
	}

	if cfg.LLM.APIKey != "" {
		providerOpts := []llm.OpenAIOption{
			llm.WithModel(cfg.LLM.Model),
			llm.WithAPIKey(cfg.LLM.APIKey),
		}
		if cfg.LLM.BaseURL != "" {
			providerOpts = append(providerOpts, llm.WithBaseURL(cfg.LLM.BaseURL))
		}
		opts = append(opts, assistant.WithProvider(llm.NewOpenAI(providerOpts...)))
	}

	if cfg.Vector.QdrantAddr != "" {
		embedder := ollama.NewEmbedder(cfg.Vector.EmbedderBaseURL, cfg.Vector.EmbedderModel)
		store, err := qdrant.New(cfg.Vector.QdrantAddr, embedder,
			cfg.Vector.AssetCollection, cfg.Vector.DocumentCollection)
		if err != nil {
			slog.Warn("vector store unavailable",
				slog.String("addr", cfg.Vector.QdrantAddr),
				slog.String("error", err.Error()),
			)
		} else {
			opts = append(opts, assistant.WithSearcher(store))
		}
	}

	if cfg.Vision.BaseURL != "" {
		opts = append(opts, assistant.WithAnalyzer(vision.NewClient(cfg.Vision.BaseURL)))
	}

	if cfg.WebSearch.BaseURL != "" {
		opts = append(opts, assistant.WithWebSearch(
			websearch.NewClient(cfg.WebSearch.BaseURL, cfg.WebSearch.Location)))
	}

	if cfg.Assistant.MaxToolRounds > 0 {
		opts = append(opts, assistant.WithMaxToolRounds(cfg.Assistant.MaxToolRounds))
	}
	if cfg.Assistant.ProviderTimeoutSeconds > 0 {
		opts = append(opts, assistant.WithProviderTimeout(
			time.Duration(cfg.Assistant.ProviderTimeoutSeconds)*time.Second))
	}
	if cfg.Assistant.ToolTimeoutSeconds > 0 {
		opts = append(opts, assistant.WithToolTimeout(
			time.Duration(cfg.Assistant.ToolTimeoutSeconds)*time.Second))
	}

	return assistant.New(cfg.Assistant.Name, opts...)
}

func runChat(ctx context.Context, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("chat", flag.ContinueOnError)
	user := cmd.String("user", "local", "User identity for asset scoping")
	prompt := cmd.String("prompt", "", "Single prompt to run (non-interactive)")
	asJSON := cmd.Bool("json", false, "Print the full result as JSON")
	if err := cmd.Parse(args); err != nil {
		fatal(err)
	}

	svc := buildService(cfg)
	svc.Initialize(ctx)

	chatCtx := assistant.ChatContext{UserID: *user}

	if *prompt != "" {
		printResult(svc.Chat(ctx, *prompt, chatCtx), *asJSON)
		return
	}

	// Interactive REPL
	fmt.Println("atelier — type a message, or /quit to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		printResult(svc.Chat(ctx, line, chatCtx), *asJSON)
	}
}

func printResult(result assistant.Result, asJSON bool) {
	if asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(encoded))
		return
	}

	fmt.Println(result.Text)
	for _, suggestion := range result.Suggestions {
		fmt.Println("  -", suggestion)
	}
	if result.Action != "" && result.Action != assistant.ActionNone {
		fmt.Println("  action:", result.Action)
	}
}

func runMCP(ctx context.Context, cfg *config.Config) {
	svc := buildService(cfg)
	svc.Initialize(ctx)

	srv := ateliermcp.NewServer(cfg.Assistant.Name, version)
	srv.ExposeRegistry(svc.Registry(), "local")

	slog.Info("mcp.serve.stdio", slog.String("assistant", cfg.Assistant.Name))
	if err := srv.ServeStdio(); err != nil {
		fatal(fmt.Errorf("mcp server failed: %w", err))
	}
}

func runHealth(ctx context.Context, cfg *config.Config) {
	svc := buildService(cfg)
	svc.Initialize(ctx)

	encoded, err := json.MarshalIndent(svc.Health(ctx), "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(encoded))
}

func printUsage() {
	fmt.Println(`atelier — creative workspace assistant

Usage:
  atelier [-config path] <command>

Commands:
  chat      One-shot (-prompt "...") or interactive chat
  mcp       Expose the tool catalog over MCP stdio
  health    Print the assistant health snapshot
  version   Print the version
  help      Show this help`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
