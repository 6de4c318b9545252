package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile   string
	verbose   bool
	dryRun    bool
	sourceDir string
	targetDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "msgfilter",
		Short: "Deduplicate Daily Hedging P&L Summary report emails",
		Long: `msgfilter keeps only the most recently sent .msg file for each
product and reporting date.

Report emails arrive several times per day per product (WB, DBIB); reply
and forward copies pile up with the same date in the name. msgfilter
groups the files by product and date, ranks each group by the embedded
send time (falling back to the file modification time), and copies the
latest file per group into the target directory.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/msgfilter/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
