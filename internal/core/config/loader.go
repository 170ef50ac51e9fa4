package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultUSDCContract = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	DefaultStacksAPIURL = "https://api.mainnet.hiro.so"
	DefaultRedisChannel = "stacksyield:bridge"
	DefaultYieldRefresh = 5 * time.Minute
	DefaultBridgeCost   = 5.0
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Zero is a valid bridge cost, so its default is set before parsing.
	cfg := AppConfig{Bridge: BridgeConfig{CostUSDC: DefaultBridgeCost}}
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, for runs
// without a config file.
func Default() *AppConfig {
	cfg := AppConfig{Bridge: BridgeConfig{CostUSDC: DefaultBridgeCost}}
	cfg.applyDefaults()
	return &cfg
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.App.Name == "" {
		cfg.App.Name = "StacksYield"
	}
	if cfg.App.URL == "" {
		cfg.App.URL = "http://localhost:3000"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Ethereum.ChainID == 0 {
		cfg.Ethereum.ChainID = 1
	}
	if cfg.Ethereum.USDC == "" {
		cfg.Ethereum.USDC = DefaultUSDCContract
	}
	if cfg.Stacks.Network == "" {
		cfg.Stacks.Network = "mainnet"
	}
	if cfg.Stacks.APIURL == "" {
		cfg.Stacks.APIURL = DefaultStacksAPIURL
	}
	if cfg.Stacks.RequestsPerSecond == 0 {
		cfg.Stacks.RequestsPerSecond = 10
	}
	if cfg.Yields.Source == "" {
		cfg.Yields.Source = "mock"
	}
	if cfg.Yields.RefreshInterval == 0 {
		cfg.Yields.RefreshInterval = DefaultYieldRefresh
	}
	if cfg.Bridge.Days == 0 {
		cfg.Bridge.Days = 365
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = DefaultRedisChannel
	}
}
