package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	AI         AIConfig
	Blockchain BlockchainConfig
	Email      EmailConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single' (для обратной совместимости).
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// AIConfig содержит настройки генерации викторин через LLM API
type AIConfig struct {
	// APIKey для Gemini API. Пустое значение - работаем только на fallback-генераторе.
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// TimeoutSec - таймаут HTTP-вызова генерации
	TimeoutSec int `mapstructure:"timeout_sec"`
	// MaxPerHour - лимит генераций на пользователя в час
	MaxPerHour int `mapstructure:"max_per_hour"`
}

// BlockchainConfig содержит настройки Blockfrost (Cardano preprod)
type BlockchainConfig struct {
	// APIKey (project_id) для Blockfrost. Пустое значение - минтинг недоступен.
	APIKey string `mapstructure:"api_key"`
	// BaseURL API Blockfrost
	BaseURL string `mapstructure:"base_url"`
	// PolicyID политики минтинга бейджей
	PolicyID   string `mapstructure:"policy_id"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// EmailConfig содержит настройки уведомлений через Resend
type EmailConfig struct {
	// APIKey для Resend. Пустое значение - используется noop-отправитель.
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции JWT
	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	// Привязка для внешних сервисов
	vip.BindEnv("ai.api_key", "GEMINI_API_KEY")
	vip.BindEnv("ai.model", "GEMINI_MODEL")
	vip.BindEnv("blockchain.api_key", "BLOCKFROST_API_KEY")
	vip.BindEnv("blockchain.base_url", "BLOCKFROST_BASE_URL")
	vip.BindEnv("email.api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("ai.model", "gemini-1.5-flash")
	vip.SetDefault("ai.timeout_sec", 30)
	vip.SetDefault("ai.max_per_hour", 10)
	vip.SetDefault("blockchain.base_url", "https://cardano-preprod.blockfrost.io/api/v0")
	vip.SetDefault("blockchain.policy_id", "a1b2c3d4e5f6789012345678901234567890123456789012345678")
	vip.SetDefault("blockchain.timeout_sec", 10)

	// Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("AI Model: %s (key set: %t)", cfg.AI.Model, cfg.AI.APIKey != "")
		log.Printf("Blockfrost URL: %s (key set: %t)", cfg.Blockchain.BaseURL, cfg.Blockchain.APIKey != "")
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}
