package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("database", "pebble")
	v.SetDefault("log_level", "info")
	v.SetDefault("chain_selector", 1)

	// Oracle defaults
	v.SetDefault("oracle.source", "")
	v.SetDefault("oracle.subscription_id", 0)
	v.SetDefault("oracle.gas_limit", 300000)
	v.SetDefault("oracle.network_id", "")

	// Lending defaults
	v.SetDefault("lending.initial_ltv_percent", 60)
	v.SetDefault("lending.liquidation_ltv_percent", 75)
	v.SetDefault("lending.price_heartbeat_seconds", 3600)
	v.SetDefault("lending.loan_token", "")
	v.SetDefault("lending.loan_decimals", 6)
}
