// Package config loads and validates estated configuration.
package config

// Config is the complete node configuration.
type Config struct {
	// Node identity and storage
	DataDir  string `mapstructure:"data_dir"`
	Database string `mapstructure:"database"`
	LogLevel string `mapstructure:"log_level"`

	// ChainSelector identifies the local chain on the relay network.
	ChainSelector uint64 `mapstructure:"chain_selector"`

	// Owner is the administrative address, hex encoded.
	Owner string `mapstructure:"owner"`

	Oracle  OracleConfig  `mapstructure:"oracle"`
	Lending LendingConfig `mapstructure:"lending"`

	configPath string
}

// OracleConfig parametrizes valuation requests to the oracle network.
type OracleConfig struct {
	Source         string `mapstructure:"source"`
	SubscriptionID uint64 `mapstructure:"subscription_id"`
	GasLimit       uint32 `mapstructure:"gas_limit"`

	// NetworkID is the oracle network identifier, hex encoded, 32 bytes.
	NetworkID string `mapstructure:"network_id"`
}

// LendingConfig parametrizes the collateralized lending engine.
type LendingConfig struct {
	InitialLTVPercent     int64 `mapstructure:"initial_ltv_percent"`
	LiquidationLTVPercent int64 `mapstructure:"liquidation_ltv_percent"`

	// PriceHeartbeatSeconds bounds the age of price feed answers.
	PriceHeartbeatSeconds int64 `mapstructure:"price_heartbeat_seconds"`

	// LoanToken is the disbursement token address, hex encoded.
	LoanToken    string `mapstructure:"loan_token"`
	LoanDecimals uint8  `mapstructure:"loan_decimals"`
}

// ConfigPath returns the path the configuration was loaded from, or empty
// when only defaults and environment variables were used.
func (c *Config) ConfigPath() string { return c.configPath }
