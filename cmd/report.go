package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/logger"
	"github.com/spigell/twin-sim/internal/results"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a results file written by the run command",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		from, _ := cmd.Flags().GetString("from")
		best, _ := cmd.Flags().GetBool("best")
		byRole, _ := cmd.Flags().GetBool("by-role")

		if err := report(cmd.OutOrStdout(), from, best, byRole); err != nil {
			logger.Fatal("printing report", zap.Error(err), zap.String("from", from))
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("from", "dashboard/results.json", "a results file written by run")
	reportCmd.Flags().Bool("best", false, "show only the best role per candidate")
	reportCmd.Flags().Bool("by-role", false, "group candidates by role as json")
}

// report prints a saved results file as a table, or grouped by role.
func report(out io.Writer, path string, best, byRole bool) error {
	res, err := results.FromFile(path)
	if err != nil {
		return fmt.Errorf("reading results: %w", err)
	}

	if best {
		res = res.Best()
	}

	if byRole {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.ReportByRole())
	}

	return res.WriteTable(out)
}
