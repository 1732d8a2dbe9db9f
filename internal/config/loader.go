package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	pkgconfig "github.com/goran-ethernal/TicketIndexor/pkg/config"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvChainHTTPURL      = "CHAIN_HTTP_URL"
	EnvChainWSURL        = "CHAIN_WS_URL"
	EnvIPFSURL           = "IPFS_URL"
	EnvContractAddresses = "CONTRACT_ADDRESSES"
	EnvAdminPrivateKey   = "ADMIN_PRIVATE_KEY"
	EnvRedisURL          = "REDIS_URL"
)

// LoadFromFile loads configuration from a file, auto-detecting the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	case ".json":
		return LoadFromJSON(path)
	case ".toml":
		return LoadFromTOML(path)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	var cfg pkgconfig.Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	return processConfig(&cfg)
}

// processConfig applies environment overrides and defaults, then validates the configuration.
func processConfig(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	ApplyEnv(cfg, os.LookupEnv)

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with the environment. Empty variables are ignored.
func ApplyEnv(cfg *pkgconfig.Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvChainHTTPURL); ok {
		cfg.Chain.HTTPURL = v
	}
	if v, ok := get(EnvChainWSURL); ok {
		cfg.Chain.WSURL = v
	}
	if v, ok := get(EnvIPFSURL); ok {
		cfg.Content.URL = v
	}
	if v, ok := get(EnvContractAddresses); ok {
		cfg.Chain.Contracts = common.SplitList(v)
	}
	if v, ok := get(EnvAdminPrivateKey); ok {
		if cfg.Admin == nil {
			cfg.Admin = &pkgconfig.AdminConfig{}
		}
		cfg.Admin.PrivateKey = v
	}
	if v, ok := get(EnvRedisURL); ok {
		if cfg.Content.Cache == nil {
			cfg.Content.Cache = &pkgconfig.CacheConfig{}
		}
		cfg.Content.Cache.RedisURL = v
	}
}
