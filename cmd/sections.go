package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/edaexport/internal/report"
	"github.com/KaramelBytes/edaexport/internal/utils"
	"github.com/spf13/cobra"
)

var secJSON bool

var sectionsCmd = &cobra.Command{
	Use:   "sections <content-file>",
	Short: "Print the sections parsed from an analysis log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		sections := report.Segment(string(b))
		out := cmd.OutOrStdout()
		if secJSON {
			if sections == nil {
				sections = []report.Section{}
			}
			js, err := utils.PrettyJSON(sections)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(js))
			return nil
		}
		if len(sections) == 0 {
			fmt.Fprintln(out, "No sections found (no \""+report.SectionMarker+"\" marker)")
			return nil
		}
		for _, s := range sections {
			fmt.Fprintf(out, "%d. %s (%d lines, %d paragraphs)\n", s.Number, s.Title, len(s.Lines()), len(s.Paragraphs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().BoolVar(&secJSON, "json", false, "print sections as JSON")
}
