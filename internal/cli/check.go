package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trajlog-project/trajlog/internal/check"
	"github.com/trajlog-project/trajlog/internal/logfile"
)

var checkCmd = &cobra.Command{
	Use:   "check <input_log> <report_file>",
	Short: "Check a logfile for missing, duplicate, and truncated timestamps",
	Long: `Check groups logfile records by simulation and reports, per group, any
missing timestamp in the expected sampling sequence (timestamp 0 included),
any timestamp recorded more than once, and a final timestamp that does not
land on a checkpoint boundary. Malformed lines and an entirely empty
logfile are reported as well.

The report has one finding per line; a clean logfile yields an empty
report. Exits non-zero when findings exist.

Examples:
  trajlog check proj1797.log report.txt
  trajlog check --json proj1797.log report.txt`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		inputLog, reportFile := args[0], args[1]

		cfg, err := loadConfig(".")
		if err != nil {
			fmtErr("check: %v", err)
			os.Exit(1)
		}

		records, parseFindings, err := logfile.Read(inputLog)
		if err != nil {
			fmtErr("check: %v", err)
			os.Exit(1)
		}

		checker := check.NewChecker(cfg.Intervals.Sample, cfg.Intervals.Checkpoint)
		result := checker.Check(records, parseFindings)

		if err := check.WriteReport(reportFile, result.Findings); err != nil {
			fmtErr("check: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(result)
		} else if result.Clean {
			fmt.Printf("Checked %d records in %d simulations: no issues found\n",
				result.Records, result.Simulations)
		} else {
			fmt.Printf("Checked %d records in %d simulations: %d findings written to %s\n",
				result.Records, result.Simulations, len(result.Findings), reportFile)
		}

		if !result.Clean {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
