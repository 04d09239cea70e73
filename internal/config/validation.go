package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var validDatabases = map[string]bool{
	"pebble": true,
	"bbolt":  true,
	"memory": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig performs validation on the complete configuration.
func ValidateConfig(config *Config) error {
	if config.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if !validDatabases[config.Database] {
		return fmt.Errorf("unknown database backend: %s", config.Database)
	}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("unknown log level: %s", config.LogLevel)
	}
	if config.ChainSelector == 0 {
		return fmt.Errorf("chain_selector must be non-zero")
	}
	if config.Owner != "" && !common.IsHexAddress(config.Owner) {
		return fmt.Errorf("owner is not a valid address: %s", config.Owner)
	}

	if err := validateOracle(&config.Oracle); err != nil {
		return fmt.Errorf("oracle validation failed: %w", err)
	}
	if err := validateLending(&config.Lending); err != nil {
		return fmt.Errorf("lending validation failed: %w", err)
	}
	return nil
}

func validateOracle(o *OracleConfig) error {
	if o.GasLimit == 0 {
		return fmt.Errorf("gas_limit must be non-zero")
	}
	if o.NetworkID != "" {
		b := common.FromHex(o.NetworkID)
		if len(b) != common.HashLength {
			return fmt.Errorf("network_id must be 32 bytes, got %d", len(b))
		}
	}
	return nil
}

func validateLending(l *LendingConfig) error {
	if l.InitialLTVPercent <= 0 || l.InitialLTVPercent > 100 {
		return fmt.Errorf("initial_ltv_percent must be in (0, 100], got %d", l.InitialLTVPercent)
	}
	if l.LiquidationLTVPercent <= 0 || l.LiquidationLTVPercent > 100 {
		return fmt.Errorf("liquidation_ltv_percent must be in (0, 100], got %d", l.LiquidationLTVPercent)
	}
	if l.LiquidationLTVPercent <= l.InitialLTVPercent {
		return fmt.Errorf("liquidation_ltv_percent (%d) must exceed initial_ltv_percent (%d)",
			l.LiquidationLTVPercent, l.InitialLTVPercent)
	}
	if l.PriceHeartbeatSeconds <= 0 {
		return fmt.Errorf("price_heartbeat_seconds must be positive, got %d", l.PriceHeartbeatSeconds)
	}
	if l.LoanToken != "" && !common.IsHexAddress(l.LoanToken) {
		return fmt.Errorf("loan_token is not a valid address: %s", l.LoanToken)
	}
	return nil
}
