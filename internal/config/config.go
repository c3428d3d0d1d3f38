// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	// LegacyApprovalCheck включает старое поведение проверки дубликатов заявок:
	// любая повторная заявка отклоняется независимо от площадки.
	LegacyApprovalCheck bool `yaml:"legacy_approval_check"`
	RedisConnection     `yaml:"redis_connection"`
	HTTPServer          `yaml:"http_server"`
	JWTToken            `yaml:"jwttoken"`
	Chain               `yaml:"chain"`
	AMQP                `yaml:"amqp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с сессионным jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// Chain структура для настройки подключения к блокчейну.
// FeePayerKey — приватный ключ аккаунта, оплачивающего газ
// в fee-delegated минтах.
type Chain struct {
	RPCURL          string        `yaml:"rpc_url"`
	ContractAddress string        `yaml:"contract_address"`
	FeePayerKey     string        `yaml:"fee_payer_key"`
	GasLimit        uint64        `yaml:"gas_limit" env-default:"3000000"`
	MintTimeout     time.Duration `yaml:"mint_timeout" env-default:"90s"`
}

// AMQP структура для настройки публикации mint-событий в RabbitMQ.
type AMQP struct {
	Enabled    bool          `yaml:"enabled"`
	URI        string        `yaml:"uri"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// MustLoad функция для загрузки конфига, завершает процесс,
// если CONFIG_PATH не задан или файл не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
