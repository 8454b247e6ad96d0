package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trajlog-project/trajlog/internal/collect"
	"github.com/trajlog-project/trajlog/internal/logfile"
)

var collectCmd = &cobra.Command{
	Use:   "collect <project_dir> <output_log>",
	Short: "Collect per-clone trajectory timestamps into a logfile",
	Long: `Collect walks every RUN<n>/CLONE<m> directory under the project root,
derives a frame listing from each clone's trajectory (reusing an existing
listing when present), and appends one fixed-width record per distinct
timestamp, in run/clone/timestamp order.

The project number is taken from the trailing digits of the project
directory name (PROJ1797 -> 1797). Any pre-existing output logfile is
replaced.

Examples:
  trajlog collect /data/PROJ1797 proj1797.log
  trajlog collect --verbose /data/PROJ1797 proj1797.log`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		projectDir, outputLog := args[0], args[1]

		cfg, err := loadConfig(projectDir)
		if err != nil {
			fmtErr("collect: %v", err)
			os.Exit(1)
		}

		walker := collect.NewWalker(cfg, logfile.NewAppender(outputLog))
		summary, err := walker.Collect(projectDir)
		if err != nil {
			fmtErr("collect: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(summary)
			return
		}
		fmt.Printf("Collected %d records from %d clones (%d skipped) across %d runs into %s\n",
			summary.RecordsWritten, summary.ClonesProcessed, summary.ClonesSkipped,
			summary.RunsVisited, outputLog)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
