// Package config loads Atelier configuration from defaults, an optional
// YAML file, and ATELIER_-prefixed environment variables, in that order.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	LLM       LLMConfig       `koanf:"llm"`
	Vector    VectorConfig    `koanf:"vector"`
	Vision    VisionConfig    `koanf:"vision"`
	WebSearch WebSearchConfig `koanf:"websearch"`
	Assistant AssistantConfig `koanf:"assistant"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // stdout, otlp
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

type LLMConfig struct {
	Model   string `koanf:"model"`
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

type VectorConfig struct {
	QdrantAddr         string `koanf:"qdrant_addr"`
	AssetCollection    string `koanf:"asset_collection"`
	DocumentCollection string `koanf:"document_collection"`
	EmbedderBaseURL    string `koanf:"embedder_base_url"`
	EmbedderModel      string `koanf:"embedder_model"`
}

type VisionConfig struct {
	BaseURL string `koanf:"base_url"`
}

type WebSearchConfig struct {
	BaseURL  string `koanf:"base_url"`
	Location string `koanf:"location"` // approximate location hint, e.g. "Barcelona, ES"
}

type AssistantConfig struct {
	Name                   string `koanf:"name"`
	MaxToolRounds          int    `koanf:"max_tool_rounds"`
	ProviderTimeoutSeconds int    `koanf:"provider_timeout_seconds"`
	ToolTimeoutSeconds     int    `koanf:"tool_timeout_seconds"`
}

// Global k instance
var k = koanf.New(".")

func Load(path string) (*Config, error) {
	// Defaults
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("telemetry.exporter", "stdout")

	k.Set("llm.model", "gpt-5-mini")

	k.Set("vector.qdrant_addr", "localhost:6334")
	k.Set("vector.asset_collection", "assets")
	k.Set("vector.document_collection", "brand_documents")
	k.Set("vector.embedder_base_url", "http://localhost:11434")
	k.Set("vector.embedder_model", "nomic-embed-text")

	k.Set("websearch.location", "Barcelona, ES")

	k.Set("assistant.name", "atelier")
	k.Set("assistant.max_tool_rounds", 8)
	k.Set("assistant.provider_timeout_seconds", 60)
	k.Set("assistant.tool_timeout_seconds", 20)

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// 2. Load from ENV (ATELIER_LLM_MODEL -> llm.model)
	if err := k.Load(env.Provider("ATELIER_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ATELIER_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
