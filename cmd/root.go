package cmd

import (
	"fmt"
	"os"

	"ar-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ar-sync",
	Short: "NetSuite receivables to HubSpot sync",
	Long: `ar-sync keeps the receivable balances of HubSpot companies in line with NetSuite.
It reads open balances with SuiteQL, matches each customer to a company and
updates (or creates) the company's balance properties.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
