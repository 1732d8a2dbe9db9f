package config

import (
	"fmt"
	"slices"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
)

// Config represents the complete configuration for the TicketIndexor worker.
type Config struct {
	// Chain contains the node endpoints and the contracts to follow
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Indexer contains ingestion and database settings
	Indexer IndexerConfig `yaml:"indexer" json:"indexer" toml:"indexer"`

	// Content contains the content-addressed store settings
	Content ContentConfig `yaml:"content" json:"content" toml:"content"`

	// Reaper contains the scheduled reaper settings
	Reaper *ReaperConfig `yaml:"reaper,omitempty" json:"reaper,omitempty" toml:"reaper,omitempty"`

	// Admin contains the signer used by the role grant operation
	Admin *AdminConfig `yaml:"admin,omitempty" json:"admin,omitempty" toml:"admin,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`

	// API contains the operator API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`
}

// ChainConfig describes how to reach the chain and which contracts emit the indexed logs.
type ChainConfig struct {
	// HTTPURL is used for eth_blockNumber, eth_getLogs and transaction submission
	HTTPURL string `yaml:"http_url" json:"http_url" toml:"http_url"`

	// WSURL is used for the live log subscription
	WSURL string `yaml:"ws_url" json:"ws_url" toml:"ws_url"`

	// Contracts is the list of contract addresses in the log filter
	Contracts []string `yaml:"contracts" json:"contracts" toml:"contracts"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.Retry != nil {
		c.Retry.ApplyDefaults()
	}
}

// Validate checks if the chain configuration is valid.
func (c *ChainConfig) Validate() error {
	if c.HTTPURL == "" {
		return fmt.Errorf("chain.http_url is required")
	}
	if c.WSURL == "" {
		return fmt.Errorf("chain.ws_url is required")
	}
	if len(c.Contracts) == 0 {
		return fmt.Errorf("chain.contracts: at least one contract address must be configured")
	}
	for i, addr := range c.Contracts {
		if !ethcommon.IsHexAddress(addr) {
			return fmt.Errorf("chain.contracts[%d]: invalid address '%s'", i, addr)
		}
	}
	return nil
}

// ContractAddresses returns the configured contracts as addresses.
func (c *ChainConfig) ContractAddresses() []ethcommon.Address {
	addrs := make([]ethcommon.Address, 0, len(c.Contracts))
	for _, a := range c.Contracts {
		addrs = append(addrs, ethcommon.HexToAddress(a))
	}
	return addrs
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// IndexerConfig configures ingestion: where to start, how to scan and how to queue.
type IndexerConfig struct {
	// StartBlock is used when no checkpoint has been stored yet
	StartBlock uint64 `yaml:"start_block" json:"start_block" toml:"start_block"`

	// ChunkSize is the block range per eth_getLogs call during historical scans
	ChunkSize uint64 `yaml:"chunk_size" json:"chunk_size" toml:"chunk_size"`

	// QueueSize is the capacity of the work queue shared by the producers
	QueueSize int `yaml:"queue_size" json:"queue_size" toml:"queue_size"`

	// ReconnectBackoff is the fixed wait between subscription attempts
	ReconnectBackoff common.Duration `yaml:"reconnect_backoff" json:"reconnect_backoff" toml:"reconnect_backoff"`

	// DB contains the indexer database configuration
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Maintenance contains optional database maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	if i.ChunkSize == 0 {
		i.ChunkSize = 5000
	}
	if i.QueueSize == 0 {
		i.QueueSize = 1024
	}
	if i.ReconnectBackoff.Duration == 0 {
		i.ReconnectBackoff = common.NewDuration(5 * time.Second) //nolint:mnd
	}
	if i.Maintenance != nil {
		i.Maintenance.ApplyDefaults()
	}

	i.DB.ApplyDefaults()
}

// Validate checks if the indexer configuration is valid.
func (i *IndexerConfig) Validate() error {
	if i.QueueSize < 0 {
		return fmt.Errorf("indexer.queue_size must not be negative")
	}
	if err := i.DB.Validate(); err != nil {
		return fmt.Errorf("indexer.db.%w", err)
	}
	if i.Maintenance != nil {
		if err := i.Maintenance.Validate(); err != nil {
			return fmt.Errorf("indexer.maintenance: %w", err)
		}
	}
	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}
	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}
	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}
	return nil
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance immediately on startup
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// ContentConfig configures the content-addressed store.
type ContentConfig struct {
	// URL is the IPFS HTTP API endpoint, e.g. "http://localhost:5001"
	URL string `yaml:"url" json:"url" toml:"url"`

	// Timeout bounds a single fetch
	Timeout common.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`

	// Cache enables the Redis cache in front of the store
	Cache *CacheConfig `yaml:"cache,omitempty" json:"cache,omitempty" toml:"cache,omitempty"`
}

// ApplyDefaults sets default values for optional content configuration fields.
func (c *ContentConfig) ApplyDefaults() {
	if c.Timeout.Duration == 0 {
		c.Timeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if c.Cache != nil {
		c.Cache.ApplyDefaults()
	}
}

// Validate checks if the content configuration is valid.
func (c *ContentConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("content.url is required")
	}
	if c.Cache != nil && c.Cache.RedisURL == "" {
		return fmt.Errorf("content.cache.redis_url is required when the cache is configured")
	}
	return nil
}

// CacheConfig configures the Redis content cache.
type CacheConfig struct {
	// RedisURL is a redis:// URL or a plain host:port
	RedisURL string `yaml:"redis_url" json:"redis_url" toml:"redis_url"`

	// TTL is the expiry of a cached document, zero keeps it forever
	TTL common.Duration `yaml:"ttl" json:"ttl" toml:"ttl"`

	// Prefix is prepended to every cache key
	Prefix string `yaml:"prefix" json:"prefix" toml:"prefix"`
}

// ApplyDefaults sets default values for optional cache configuration fields.
func (c *CacheConfig) ApplyDefaults() {
	if c.Prefix == "" {
		c.Prefix = "content:"
	}
	if c.TTL.Duration == 0 {
		c.TTL = common.NewDuration(24 * time.Hour) //nolint:mnd
	}
}

// ReaperConfig configures the scheduled reaper.
type ReaperConfig struct {
	// Enabled runs the reaper inside the worker process
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// Interval is the wait between two ticks
	Interval common.Duration `yaml:"interval" json:"interval" toml:"interval"`
}

// ApplyDefaults sets default values for optional reaper configuration fields.
func (r *ReaperConfig) ApplyDefaults() {
	if r.Interval.Duration == 0 {
		r.Interval = common.NewDuration(time.Hour)
	}
}

// AdminConfig holds the signer for the role grant operation.
type AdminConfig struct {
	// PrivateKey is the hex encoded operator key, usually provided via ADMIN_PRIVATE_KEY
	PrivateKey string `yaml:"private_key" json:"private_key" toml:"private_key"`

	// RolesContract is the AccessControl contract that receives grantRole
	RolesContract string `yaml:"roles_contract" json:"roles_contract" toml:"roles_contract"`

	// ChainID is used for EIP-155 signing; zero asks the node
	ChainID uint64 `yaml:"chain_id" json:"chain_id" toml:"chain_id"`
}

// Validate checks if the admin configuration is valid.
func (a *AdminConfig) Validate() error {
	if a.RolesContract != "" && !ethcommon.IsHexAddress(a.RolesContract) {
		return fmt.Errorf("admin.roles_contract: invalid address '%s'", a.RolesContract)
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - downloader, log-fetcher, subscriber: ingestion
	//   - sync-manager, quarantine: checkpoint and failure tables
	//   - processor, projector, content: decoding and projection
	//   - reaper, roles, maintenance, api, metrics
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return ""
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil {
		return ""
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// APIConfig configures the operator HTTP API.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	ReadTimeout  common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS configures cross-origin access to the API
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures CORS headers.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Indexer.ApplyDefaults()
	c.Content.ApplyDefaults()

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.ApplyDefaults()

	if c.Reaper != nil {
		c.Reaper.ApplyDefaults()
	}
	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
	if c.API != nil {
		c.API.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}

	if err := c.Indexer.Validate(); err != nil {
		return err
	}

	if err := c.Content.Validate(); err != nil {
		return err
	}

	if c.Admin != nil {
		if err := c.Admin.Validate(); err != nil {
			return err
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
