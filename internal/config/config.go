package config

import (
	"fmt"
	"os"

	"wallet_scanner/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Scanner     ScannerConfig     `yaml:"scanner"`
	Chains      []ChainNode       `yaml:"chains"`
	Adapters    AdaptersConfig    `yaml:"adapters"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	PriceCache  PriceCacheConfig  `yaml:"priceCache"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// ScannerConfig holds the tunables of the query engine and scan fan-out.
type ScannerConfig struct {
	RetryLimit               int `yaml:"retryLimit"`
	RPCCallTimeoutMs         int `yaml:"rpcCallTimeoutMs"`
	MaxConcurrentBranches    int `yaml:"maxConcurrentBranches"`
	MaxAddressesPerBatchCall int `yaml:"maxAddressesPerBatchCall"`
}

// ChainNode holds the configuration of one blockchain network.
type ChainNode struct {
	Identifier          string   `yaml:"identifier"`
	Name                string   `yaml:"name"`
	ChainID             uint64   `yaml:"chainId"`
	Endpoints           []string `yaml:"endpoints"`
	MulticallAddress    string   `yaml:"multicallAddress"`
	NativeSymbol        string   `yaml:"nativeSymbol"`
	NativeDecimals      uint8    `yaml:"nativeDecimals"`
	DEXScreenerID       string   `yaml:"dexScreenerChainId"`
	WrappedNative       string   `yaml:"wrappedNativeAddress"`
	LimiterRate         float64  `yaml:"limiterRate"` // requests per second, 0 = unlimited
	LimiterBurst        int      `yaml:"limiterBurst"`
	SuppressedAddresses []string `yaml:"suppressedAddresses"`
}

// AdaptersConfig declares the protocol integrations to register per
// chain. The registry built from it is static; nothing is loaded by
// name at runtime.
type AdaptersConfig struct {
	LPPools        []LPPoolsNode        `yaml:"lpPools"`
	LendingMarkets []LendingMarketsNode `yaml:"lendingMarkets"`
}

// LPPoolsNode lists the pair contracts an LP adapter should sweep.
type LPPoolsNode struct {
	Chain   string   `yaml:"chain"`
	Project string   `yaml:"project"`
	Pools   []string `yaml:"pools"`
}

// LendingMarketsNode lists the markets of a lending protocol.
type LendingMarketsNode struct {
	Chain   string        `yaml:"chain"`
	Project string        `yaml:"project"`
	Markets []LendingPair `yaml:"markets"`
}

// LendingPair describes one lending market: the interest-bearing supply
// token, the variable debt token and the underlying asset they track.
type LendingPair struct {
	SupplyToken string `yaml:"supplyToken"`
	DebtToken   string `yaml:"debtToken"`
	Underlying  string `yaml:"underlying"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxTokensPerRequest  int    `yaml:"maxTokensPerRequest"`
}

// PriceCacheConfig holds the TTL settings of the price cache.
type PriceCacheConfig struct {
	TTLMinutes             int `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Scanner.RetryLimit == 0 {
		cfg.Scanner.RetryLimit = 3
		logrus.Infof("Scanner.RetryLimit not set, defaulting to %d", cfg.Scanner.RetryLimit)
	}
	if cfg.Scanner.RPCCallTimeoutMs == 0 {
		cfg.Scanner.RPCCallTimeoutMs = 10000
		logrus.Infof("Scanner.RPCCallTimeoutMs not set, defaulting to %d ms", cfg.Scanner.RPCCallTimeoutMs)
	}
	if cfg.Scanner.MaxConcurrentBranches == 0 {
		cfg.Scanner.MaxConcurrentBranches = 8
	}
	if cfg.Scanner.MaxAddressesPerBatchCall == 0 {
		cfg.Scanner.MaxAddressesPerBatchCall = 100
	}
	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}
	if cfg.DEXScreener.MaxTokensPerRequest == 0 {
		cfg.DEXScreener.MaxTokensPerRequest = 30
	}
	if cfg.PriceCache.TTLMinutes == 0 {
		cfg.PriceCache.TTLMinutes = 15
		logrus.Infof("PriceCache.TTLMinutes not set, defaulting to %d minutes", cfg.PriceCache.TTLMinutes)
	}
	if cfg.PriceCache.CleanupIntervalMinutes == 0 {
		cfg.PriceCache.CleanupIntervalMinutes = 10
	}

	for _, chain := range cfg.Chains {
		if len(chain.Endpoints) == 0 {
			return nil, fmt.Errorf("chain %q has no RPC endpoints configured", chain.Identifier)
		}
		if chain.MulticallAddress == "" {
			logrus.Warnf("Chain %q (chainId %d) has no multicall address configured; batch calls on it will fail.",
				chain.Identifier, chain.ChainID)
		}
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// ChainEntity converts a config node into the immutable chain entity.
func (n ChainNode) ChainEntity() entity.Chain {
	decimals := n.NativeDecimals
	if decimals == 0 {
		decimals = 18
	}
	return entity.Chain{
		Identifier:       n.Identifier,
		Name:             n.Name,
		ChainID:          n.ChainID,
		Endpoints:        n.Endpoints,
		MulticallAddress: n.MulticallAddress,
		NativeSymbol:     n.NativeSymbol,
		NativeDecimals:   decimals,
	}
}
