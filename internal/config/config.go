package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Letter    LetterConfig    `toml:"letter"`
	LLM       LLMConfig       `toml:"llm"`
	Anthropic AnthropicConfig `toml:"anthropic"`
	Redis     RedisConfig     `toml:"redis"`
	MySQL     MySQLConfig     `toml:"mysql"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Stripe    StripeConfig    `toml:"stripe"`
	Email     EmailConfig     `toml:"email"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
	BaseURL string `toml:"base_url"`
}

type LetterConfig struct {
	TTLHours            int     `toml:"ttl_hours"`
	MinExplanationChars int     `toml:"min_explanation_chars"`
	GenerateRPS         float64 `toml:"generate_rps"`
	GenerateBurst       int     `toml:"generate_burst"`
}

// LLMConfig is the primary, OpenAI-compatible generation provider.
type LLMConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// AnthropicConfig is the secondary generation provider used as fallback.
type AnthropicConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Version string `toml:"version"`
}

// RedisConfig selects the redis-backed document store. A blank addr keeps
// the process-local in-memory store.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MySQLConfig enables the billing event audit table. A blank host disables
// it entirely.
type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

// RabbitMQConfig enables queued letter-email delivery. A blank URL sends
// emails inline instead.
type RabbitMQConfig struct {
	URL            string `toml:"url"`
	EmailSendQueue string `toml:"email_send_queue"`
}

type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	PriceID       string `toml:"price_id"`
	WebhookSecret string `toml:"webhook_secret"`
}

type EmailConfig struct {
	ResendAPIKey string `toml:"resend_api_key"`
	From         string `toml:"from"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.DB,
		c.MySQL.Params,
	)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "letterforge",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
			BaseURL: "http://localhost:8080",
		},
		Letter: LetterConfig{
			TTLHours:            24,
			MinExplanationChars: 50,
			GenerateRPS:         0.2,
			GenerateBurst:       3,
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKey:      "",
			Model:       "gpt-4o-mini",
			MaxTokens:   1500,
			Temperature: 0.7,
		},
		Anthropic: AnthropicConfig{
			BaseURL: "https://api.anthropic.com",
			APIKey:  "",
			Model:   "claude-3-5-sonnet-20241022",
			Version: "2023-06-01",
		},
		Redis: RedisConfig{
			Addr:     "",
			Password: "",
			DB:       0,
		},
		MySQL: MySQLConfig{
			Host:   "",
			Port:   3306,
			User:   "root",
			DB:     "letterforge",
			Params: "parseTime=true&loc=Local&charset=utf8mb4",
		},
		RabbitMQ: RabbitMQConfig{
			URL:            "",
			EmailSendQueue: "letter.email.send",
		},
		Stripe: StripeConfig{},
		Email: EmailConfig{
			ResendAPIKey: "",
			From:         "Immigration Letter <noreply@letterforge.app>",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.BaseURL = getEnv("APP_BASE_URL", cfg.App.BaseURL)

	cfg.Letter.TTLHours = getEnvAsInt("LETTER_TTL_HOURS", cfg.Letter.TTLHours)
	cfg.Letter.MinExplanationChars = getEnvAsInt("LETTER_MIN_EXPLANATION_CHARS", cfg.Letter.MinExplanationChars)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)

	cfg.Anthropic.BaseURL = getEnv("ANTHROPIC_BASE_URL", cfg.Anthropic.BaseURL)
	cfg.Anthropic.APIKey = getEnv("ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	cfg.Anthropic.Model = getEnv("ANTHROPIC_MODEL", cfg.Anthropic.Model)
	cfg.Anthropic.Version = getEnv("ANTHROPIC_VERSION", cfg.Anthropic.Version)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.MySQL.Host = getEnv("MYSQL_HOST", cfg.MySQL.Host)
	cfg.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.MySQL.Port)
	cfg.MySQL.User = getEnv("MYSQL_USER", cfg.MySQL.User)
	cfg.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.MySQL.Password)
	cfg.MySQL.DB = getEnv("MYSQL_DB", cfg.MySQL.DB)
	cfg.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.MySQL.Params)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.EmailSendQueue = getEnv("RABBITMQ_EMAIL_SEND_QUEUE", cfg.RabbitMQ.EmailSendQueue)

	cfg.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", cfg.Stripe.SecretKey)
	cfg.Stripe.PriceID = getEnv("STRIPE_PRICE_ID", cfg.Stripe.PriceID)
	cfg.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", cfg.Stripe.WebhookSecret)

	cfg.Email.ResendAPIKey = getEnv("RESEND_API_KEY", cfg.Email.ResendAPIKey)
	cfg.Email.From = getEnv("EMAIL_FROM", cfg.Email.From)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
