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
	"github.com/libra-ai/msgfilter/internal/transfer"
	"github.com/libra-ai/msgfilter/internal/ui"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select the latest file per product and date, copy the winners",
		Long: `Run one full filtering pass over the source directory.

Files that don't follow the report naming convention are skipped. For
each (product, date) group the file with the latest send time is copied
into the target directory; a copy failure for one winner does not stop
the others.

Examples:
  msgfilter run
  msgfilter run --source /mnt/inbox --target ./data/input
  msgfilter run --dry-run`,
		Args: cobra.NoArgs,
		RunE: runRun,
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "source directory (overrides config)")
	cmd.Flags().StringVarP(&targetDir, "target", "t", "", "target directory (overrides config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview winners without copying")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if sourceDir != "" {
		cfg.SourceDir = sourceDir
	}
	if targetDir != "" {
		cfg.TargetDir = targetDir
	}
	if cfg.SourceDir == "" || cfg.TargetDir == "" {
		return fmt.Errorf("source and target directories must be set (config or --source/--target)")
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("run", "starting msg file filtering",
		logging.F("source", cfg.SourceDir),
		logging.F("target", cfg.TargetDir),
		logging.F("dry_run", dryRun))

	entries, err := scanner.ListMsgFiles(cfg.SourceDir)
	if err != nil {
		log.Error("run", "unable to enumerate source directory", err)
		return err
	}

	resolver := report.NewTwoTier(msg.ReadSendTime, log)
	winners, stats := report.NewSelector(log).Select(scanner.Paths(entries), resolver)

	if stats.Groups == 0 {
		log.Warn("run", "no matching files found")
		printSummary(stats, 0, 0, 0)
		return nil
	}

	copier := transfer.NewCopier(cfg.Transfer.Options())
	copied, failed := 0, 0
	var copiedBytes int64

	for _, key := range report.SortedKeys(winners) {
		w := winners[key]

		if dryRun {
			fmt.Printf("  %s %s  %s\n",
				ui.Product(key.String()),
				ui.Dim("→"),
				ui.Path(w.Filename))
			continue
		}

		res, err := copier.Copy(w.Path, cfg.TargetDir)
		if err != nil {
			failed++
			log.Error("run", "error copying file", err,
				logging.F("file", w.Filename))
			continue
		}

		copied++
		copiedBytes += res.BytesCopied
		log.Info("run", "copied file",
			logging.F("file", w.Filename),
			logging.F("target", cfg.TargetDir),
			logging.F("bytes", res.BytesCopied),
			logging.F("sent", w.Resolution.Time.Format(time.RFC3339)))
	}

	printSummary(stats, copied, failed, copiedBytes)
	log.Info("run", "msg file filtering completed",
		logging.F("groups", stats.Groups),
		logging.F("copied", copied),
		logging.F("failed", failed))
	return nil
}

func printSummary(stats report.Stats, copied, failed int, copiedBytes int64) {
	ui.Section("summary")
	fmt.Printf("  Files seen:     %d\n", stats.Total)
	fmt.Printf("  Matched:        %d\n", stats.Matched)
	if stats.Unmatched > 0 {
		fmt.Printf("  Unmatched:      %s\n", ui.Warning(fmt.Sprintf("%d", stats.Unmatched)))
	}
	if stats.Fallbacks > 0 {
		fmt.Printf("  Mtime fallback: %d\n", stats.Fallbacks)
	}
	if stats.Unresolved > 0 {
		fmt.Printf("  Unresolved:     %s\n", ui.Warning(fmt.Sprintf("%d", stats.Unresolved)))
	}
	fmt.Printf("  Groups:         %d\n", stats.Groups)
	if dryRun {
		fmt.Printf("  %s\n", ui.Dim("dry run, nothing copied"))
		return
	}
	fmt.Printf("  Copied:         %s (%s)\n",
		ui.Success(fmt.Sprintf("%d", copied)), ui.Bytes(copiedBytes))
	if failed > 0 {
		fmt.Printf("  Copy failures:  %s\n", ui.Error(fmt.Sprintf("%d", failed)))
	}
}
