package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Wallet WalletConfig
	Ledger LedgerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fintrack"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type WalletConfig struct {
	// PoolSize is the number of pre-provisioned wallet addresses. Once all
	// are assigned, registration fails until the pool is enlarged.
	PoolSize int `env:"WALLET_POOL_SIZE, default=1024"`
	// Seed makes the derived address pool stable across restarts.
	Seed string `env:"WALLET_POOL_SEED, default=fintrack"`
}

type LedgerConfig struct {
	// Backend selects the ledger mirror implementation: "mongo" or "memory".
	Backend string `env:"LEDGER_BACKEND, default=mongo"`
	// Workers is the number of mirror workers appending committed
	// transactions to the ledger backend.
	Workers int `env:"LEDGER_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
