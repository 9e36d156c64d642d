package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/genieai/genie-web/internal/reveal"
	"github.com/genieai/genie-web/internal/services"
	"gopkg.in/yaml.v3"
)

type llmConfig interface {
	llm(logger *slog.Logger) (services.LLM, error)
}

// BaseLLMConfig contains the common fields for all LLM configurations.
type BaseLLMConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	MaxTokens   int      `yaml:"maxTokens"`
	Temperature *float32 `yaml:"temperature"`
}

type config struct {
	Port            string        `yaml:"port"`
	Persona         string        `yaml:"persona"`
	FallbackMessage string        `yaml:"fallbackMessage"`
	RevealInterval  time.Duration `yaml:"revealInterval"`
	LogLevel        string        `yaml:"logLevel"`
	LogFormat       string        `yaml:"logFormat"`
	LLM             llmConfig     `yaml:"llm"`
}

type openAIConfig struct {
	BaseLLMConfig `yaml:",inline"`
	APIKey        string `yaml:"apiKey"`
	BaseURL       string `yaml:"baseURL"`
}

type ollamaConfig struct {
	BaseLLMConfig `yaml:",inline"`
	Host          string `yaml:"host"`
}

type anthropicConfig struct {
	BaseLLMConfig `yaml:",inline"`
	APIKey        string `yaml:"apiKey"`
	BaseURL       string `yaml:"baseURL"`
}

const (
	defaultPort  = "8080"
	defaultModel = "gpt-4o-mini"
)

func defaultConfig() config {
	return config{
		Port:            defaultPort,
		Persona:         services.DefaultPersona,
		FallbackMessage: services.DefaultFallback,
		RevealInterval:  reveal.DefaultInterval,
		LogLevel:        "info",
		LogFormat:       "text",
		LLM: &openAIConfig{
			BaseLLMConfig: BaseLLMConfig{
				Provider: "openai",
				Model:    defaultModel,
			},
		},
	}
}

// loadConfig reads the YAML configuration at path. Keys absent from the file keep their default
// value, and a missing file yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return config{}, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("error decoding config file: %w", err)
	}

	return cfg, nil
}

func (c *config) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig struct {
		Port            string         `yaml:"port"`
		Persona         *string        `yaml:"persona"`
		FallbackMessage string         `yaml:"fallbackMessage"`
		RevealInterval  time.Duration  `yaml:"revealInterval"`
		LogLevel        string         `yaml:"logLevel"`
		LogFormat       string         `yaml:"logFormat"`
		LLM             map[string]any `yaml:"llm"`
	}

	if err := value.Decode(&rawConfig); err != nil {
		return err
	}

	if rawConfig.Port != "" {
		c.Port = rawConfig.Port
	}
	// An explicitly empty persona disables the system message.
	if rawConfig.Persona != nil {
		c.Persona = *rawConfig.Persona
	}
	if rawConfig.FallbackMessage != "" {
		c.FallbackMessage = rawConfig.FallbackMessage
	}
	if rawConfig.RevealInterval != 0 {
		c.RevealInterval = rawConfig.RevealInterval
	}
	if rawConfig.LogLevel != "" {
		c.LogLevel = rawConfig.LogLevel
	}
	if rawConfig.LogFormat != "" {
		c.LogFormat = rawConfig.LogFormat
	}

	if rawConfig.LLM == nil {
		return nil
	}

	llmProvider, ok := rawConfig.LLM["provider"].(string)
	if !ok {
		return fmt.Errorf("llm provider is required")
	}

	llmRawYAML, err := yaml.Marshal(rawConfig.LLM)
	if err != nil {
		return err
	}

	var llm llmConfig
	switch llmProvider {
	case "openai":
		llm = &openAIConfig{}
	case "ollama":
		llm = &ollamaConfig{}
	case "anthropic":
		llm = &anthropicConfig{}
	default:
		return fmt.Errorf("unknown llm provider: %s", llmProvider)
	}

	if err := yaml.Unmarshal(llmRawYAML, llm); err != nil {
		return err
	}

	c.LLM = llm

	return nil
}

func (c config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.RevealInterval < 0 {
		return fmt.Errorf("revealInterval must not be negative")
	}
	if c.LLM == nil {
		return fmt.Errorf("llm is required")
	}
	return nil
}

func (c config) slogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (b BaseLLMConfig) parameters() services.Parameters {
	params := services.Parameters{
		MaxTokens:   b.MaxTokens,
		Temperature: services.DefaultTemperature,
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = services.DefaultMaxTokens
	}
	if b.Temperature != nil {
		params.Temperature = *b.Temperature
	}
	return params
}

func (o openAIConfig) llm(logger *slog.Logger) (services.LLM, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return services.NewOpenAI(apiKey, o.BaseURL, o.Model, o.parameters(), logger), nil
}

func (o ollamaConfig) llm(logger *slog.Logger) (services.LLM, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	host := o.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	return services.NewOllama(host, o.Model, o.parameters(), logger)
}

func (a anthropicConfig) llm(logger *slog.Logger) (services.LLM, error) {
	if a.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	apiKey := a.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return services.NewAnthropic(apiKey, a.BaseURL, a.Model, a.parameters(), logger), nil
}
