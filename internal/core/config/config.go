package config

import (
	"time"

	redisclient "github.com/vietddude/stacksyield/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	App      AppInfo            `yaml:"app"`
	Server   ServerConfig       `yaml:"server"`
	Logging  LoggingConfig      `yaml:"logging"`
	Ethereum EthereumConfig     `yaml:"ethereum"`
	Stacks   StacksConfig       `yaml:"stacks"`
	Yields   YieldsConfig       `yaml:"yields"`
	Bridge   BridgeConfig       `yaml:"bridge"`
	Redis    redisclient.Config `yaml:"redis"`
}

// AppInfo identifies the dashboard to wallets.
type AppInfo struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// EthereumConfig holds the source chain settings.
type EthereumConfig struct {
	RPCURL     string `yaml:"rpc_url"`
	ChainID    int64  `yaml:"chain_id"`
	PrivateKey string `yaml:"private_key"` // hex, usually ${ETH_PRIVATE_KEY}
	USDC       string `yaml:"usdc_contract"`
	XReserve   string `yaml:"xreserve_contract"`
}

// StacksConfig holds the destination chain settings.
type StacksConfig struct {
	Network           string `yaml:"network"` // mainnet, testnet
	APIURL            string `yaml:"api_url"`
	Address           string `yaml:"address"`
	USDCxToken        string `yaml:"usdcx_token"` // <contract>::<asset>, empty disables balance lookups
	RequestsPerSecond int    `yaml:"requests_per_second"`
}

// YieldsConfig selects the yield data source.
type YieldsConfig struct {
	Source          string        `yaml:"source"` // mock, http
	URL             string        `yaml:"url"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// BridgeConfig holds bridge cost assumptions used by recommendations.
type BridgeConfig struct {
	CostUSDC float64 `yaml:"cost_usdc"`
	Days     int     `yaml:"days"`
}
