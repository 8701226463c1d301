package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/viper"
)

// Provider names the configured LLM backend.
type Provider string

const (
	ProviderArk    Provider = "ark"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = ""
)

// Config aggregates all service settings.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Cache     CacheConfig
	Workspace WorkspaceConfig
	Monitor   MonitorConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// AIConfig describes the LLM providers. Fast and standard models mirror the
// generation tiers: fast for template fallbacks and quick Q&A, standard for
// open-ended prompts.
type AIConfig struct {
	Provider       Provider
	ArkAPIKey      string
	ArkAccessKey   string
	ArkSecretKey   string
	ArkBaseURL     string
	ArkRegion      string
	OpenAIKey      string
	FastModel      string
	StandardModel  string
	Temperature    *float64
	MaxTokens      *int
	TimeoutSeconds int
	StreamResponse bool
}

// CacheConfig describes the response cache tiers.
type CacheConfig struct {
	Dir              string
	MaxMemoryEntries int
}

// WorkspaceConfig describes where generated projects land.
type WorkspaceConfig struct {
	Root string
}

// MonitorConfig tunes the workflow registry.
type MonitorConfig struct {
	RecentLimit int
	MaxSessions int
}

// Load reads configuration from an optional config.yaml and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	server, err := loadServerConfig(v)
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Cache: CacheConfig{
			Dir:              v.GetString("CACHE_DIR"),
			MaxMemoryEntries: v.GetInt("CACHE_MAX_ENTRIES"),
		},
		Workspace: WorkspaceConfig{
			Root: v.GetString("WORKSPACE_ROOT"),
		},
		Monitor: MonitorConfig{
			RecentLimit: v.GetInt("MONITOR_RECENT_LIMIT"),
			MaxSessions: v.GetInt("MONITOR_MAX_SESSIONS"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("AI_PROVIDER", "")
	v.SetDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("ARK_REGION", "cn-beijing")
	v.SetDefault("AI_FAST_MODEL", "")
	v.SetDefault("AI_MODEL", "")
	v.SetDefault("AI_TIMEOUT_SECONDS", 15)
	v.SetDefault("AI_STREAM", true)
	v.SetDefault("CACHE_DIR", filepath.Join(os.TempDir(), "coder-buddy-cache"))
	v.SetDefault("CACHE_MAX_ENTRIES", 1000)
	v.SetDefault("WORKSPACE_ROOT", "generated_project")
	v.SetDefault("MONITOR_RECENT_LIMIT", 20)
	v.SetDefault("MONITOR_MAX_SESSIONS", 0)
}

func loadServerConfig(v *viper.Viper) (ServerConfig, error) {
	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}
	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	return ServerConfig{Addr: ":" + port}, nil
}

func loadAIConfig(v *viper.Viper) (AIConfig, error) {
	var temperature *float64
	if v.IsSet("AI_TEMPERATURE") && strings.TrimSpace(v.GetString("AI_TEMPERATURE")) != "" {
		val := v.GetFloat64("AI_TEMPERATURE")
		temperature = &val
	}

	var maxTokens *int
	if v.IsSet("AI_MAX_TOKENS") && strings.TrimSpace(v.GetString("AI_MAX_TOKENS")) != "" {
		val := v.GetInt("AI_MAX_TOKENS")
		maxTokens = &val
	}

	cfg := AIConfig{
		ArkAPIKey:      strings.TrimSpace(v.GetString("ARK_API_KEY")),
		ArkAccessKey:   strings.TrimSpace(v.GetString("ARK_ACCESS_KEY")),
		ArkSecretKey:   strings.TrimSpace(v.GetString("ARK_SECRET_KEY")),
		ArkBaseURL:     v.GetString("ARK_BASE_URL"),
		ArkRegion:      v.GetString("ARK_REGION"),
		OpenAIKey:      strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		FastModel:      strings.TrimSpace(v.GetString("AI_FAST_MODEL")),
		StandardModel:  strings.TrimSpace(v.GetString("AI_MODEL")),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		TimeoutSeconds: v.GetInt("AI_TIMEOUT_SECONDS"),
		StreamResponse: v.GetBool("AI_STREAM"),
	}

	provider := Provider(strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))))
	switch provider {
	case ProviderArk, ProviderOpenAI:
		cfg.Provider = provider
	case ProviderNone:
		// Infer from available credentials.
		if cfg.OpenAIKey != "" {
			cfg.Provider = ProviderOpenAI
		} else if cfg.arkCredentialed() {
			cfg.Provider = ProviderArk
		}
	default:
		return AIConfig{}, fmt.Errorf("unknown AI_PROVIDER value %q", provider)
	}

	return cfg, nil
}

func (c AIConfig) arkCredentialed() bool {
	return c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != "")
}

// Enabled reports whether the required credentials and model name are set.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.StandardModel != "" && c.arkCredentialed()
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	default:
		return false
	}
}

// NewArkChatModel builds an Ark chat model for the given model name.
func (c AIConfig) NewArkChatModel(ctx context.Context, modelName string) (model.ChatModel, error) {
	if !c.arkCredentialed() || modelName == "" {
		return nil, fmt.Errorf("ark credentials or model name missing: set ARK_API_KEY (or AK/SK) and AI_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.ArkBaseURL,
		Region:      c.ArkRegion,
		APIKey:      c.ArkAPIKey,
		AccessKey:   c.ArkAccessKey,
		SecretKey:   c.ArkSecretKey,
		Model:       modelName,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}
	return ark.NewChatModel(ctx, cfg)
}
