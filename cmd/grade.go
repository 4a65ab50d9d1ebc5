package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edaexport/internal/report"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <score>",
	Short: "Print the quality band for a 0-100 score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(args[0]), ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[0], err)
		}
		g := report.Classify(score)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%.1f / 100)\n", g.Symbol, g.Label, score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}
