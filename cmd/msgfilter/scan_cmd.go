package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/libra-ai/msgfilter/internal/config"
	"github.com/libra-ai/msgfilter/internal/logging"
	"github.com/libra-ai/msgfilter/internal/msg"
	"github.com/libra-ai/msgfilter/internal/report"
	"github.com/libra-ai/msgfilter/internal/scanner"
	"github.com/libra-ai/msgfilter/internal/ui"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [source]",
		Short: "Show groups and winners without copying anything",
		Long: `Scan a source directory and report what a run would do: the groups
found, how many contenders each has, and which file would win.

Examples:
  msgfilter scan
  msgfilter scan /mnt/inbox`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.SourceDir = args[0]
	}
	if cfg.SourceDir == "" {
		return fmt.Errorf("source directory must be set (config or argument)")
	}

	entries, err := scanner.ListMsgFiles(cfg.SourceDir)
	if err != nil {
		return err
	}

	// Scanning is read-only; keep the run log untouched.
	log := logging.Nop()
	resolver := report.NewTwoTier(msg.ReadSendTime, log)
	winners, stats := report.NewSelector(log).Select(scanner.Paths(entries), resolver)

	ui.Section(fmt.Sprintf("%d groups in %s", stats.Groups, cfg.SourceDir))
	for _, key := range report.SortedKeys(winners) {
		w := winners[key]
		fmt.Printf("  %s  %s\n", ui.Product(key.String()),
			ui.Dim(fmt.Sprintf("(%d contenders)", w.Contenders)))
		fmt.Printf("    %s %s  %s\n",
			ui.Success("keep"),
			ui.Path(w.Filename),
			ui.Dim(fmt.Sprintf("%s via %s",
				w.Resolution.Time.Format(time.RFC3339),
				w.Resolution.Source)))
	}

	fmt.Println()
	fmt.Printf("  %d files seen, %d matched, %d unmatched, %d unresolved, %s on disk\n",
		stats.Total, stats.Matched, stats.Unmatched, stats.Unresolved,
		ui.Bytes(scanner.TotalSize(entries)))
	return nil
}
