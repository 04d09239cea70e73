package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Load and print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		fmt.Printf("data_dir:        %s\n", cfg.DataDir)
		fmt.Printf("database:        %s\n", cfg.Database)
		fmt.Printf("log_level:       %s\n", cfg.LogLevel)
		fmt.Printf("chain_selector:  %d\n", cfg.ChainSelector)
		if cfg.Owner != "" {
			fmt.Printf("owner:           %s\n", cfg.Owner)
		}
		fmt.Printf("oracle:          subscription=%d gas_limit=%d\n",
			cfg.Oracle.SubscriptionID, cfg.Oracle.GasLimit)
		fmt.Printf("lending:         ltv=%d%% liquidation=%d%% heartbeat=%ds decimals=%d\n",
			cfg.Lending.InitialLTVPercent, cfg.Lending.LiquidationLTVPercent,
			cfg.Lending.PriceHeartbeatSeconds, cfg.Lending.LoanDecimals)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
