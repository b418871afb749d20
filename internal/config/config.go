package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Provider 标识聊天模型后端。
const (
	ProviderOpenAI    = "openai"
	ProviderArk       = "ark"
	ProviderAnthropic = "anthropic"
)

// Store drivers.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Store  StoreConfig
	Web    WebConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	web := WebConfig{
		QuestionnairePath: getEnvOrDefault("QUESTIONNAIRE_PATH", "web/questionnaire_frontend.html"),
	}

	return &Config{Server: server, AI: ai, Store: store, Web: web}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// WebConfig points at static assets served as-is.
type WebConfig struct {
	QuestionnairePath string
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string
	// Timeout bounds every chat completion call.
	Timeout   time.Duration
	OpenAI    OpenAIConfig
	Ark       ArkConfig
	Anthropic AnthropicConfig
}

// Enabled reports whether the selected provider has credentials.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.Enabled()
	case ProviderArk:
		return c.Ark.Enabled()
	case ProviderAnthropic:
		return c.Anthropic.Enabled()
	default:
		return false
	}
}

// OpenAIConfig configures the OpenAI chat completion client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// AnthropicConfig configures the Anthropic messages client.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

func (c AnthropicConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// ArkConfig 描述火山方舟模型配置。
type ArkConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))
	switch provider {
	case ProviderOpenAI, ProviderArk, ProviderAnthropic:
	default:
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q", provider)
	}

	timeout, err := parseDurationEnv("CHAT_TIMEOUT", 60*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	arkCfg, err := loadArkConfig()
	if err != nil {
		return AIConfig{}, err
	}

	anthropicMaxTokens := 1024
	if override, err := parseOptionalIntEnv("ANTHROPIC_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		anthropicMaxTokens = *override
	}

	return AIConfig{
		Provider: provider,
		Timeout:  timeout,
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
		Ark: arkCfg,
		Anthropic: AnthropicConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
			Model:     getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			MaxTokens: anthropicMaxTokens,
		},
	}, nil
}

func loadArkConfig() (ArkConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return ArkConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return ArkConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return ArkConfig{}, err
	}

	modelName := strings.TrimSpace(os.Getenv("ARK_MODEL"))
	if modelName == "" {
		modelName = strings.TrimSpace(os.Getenv("Model"))
	}

	return ArkConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       modelName,
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// StoreConfig selects where the behavior record lives.
type StoreConfig struct {
	Driver     string
	Path       string
	SQLitePath string
	Redis      RedisConfig
}

// RedisConfig 描述 Redis 连接参数。
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func loadStoreConfig() (StoreConfig, error) {
	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreDriverFile))
	switch driver {
	case StoreDriverFile, StoreDriverSQLite, StoreDriverRedis:
	default:
		return StoreConfig{}, fmt.Errorf("invalid STORE_DRIVER value %q", driver)
	}

	db := 0
	if override, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return StoreConfig{}, err
	} else if override != nil {
		db = *override
	}

	return StoreConfig{
		Driver:     driver,
		Path:       getEnvOrDefault("STORE_PATH", "student_responses.txt"),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "treatorhell.db"),
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
			Key:      strings.TrimSpace(os.Getenv("REDIS_KEY")),
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
