package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/edaexport/internal/report"
	"github.com/KaramelBytes/edaexport/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	expContent       string
	expStats         string
	expOutput        string
	expFormat        string
	expNoPageNumbers bool
)

var exportCmd = &cobra.Command{
	Use:   "export <metrics.(yaml|json)>",
	Short: "Render a metrics record (and optional analysis log) as DOCX and/or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		m, err := report.LoadMetrics(args[0])
		if err != nil {
			return fmt.Errorf("load metrics: %w", err)
		}
		req := report.Request{Metrics: m, Now: time.Now()}
		if expStats != "" {
			st, err := report.LoadStats(expStats)
			if err != nil {
				return fmt.Errorf("load stats: %w", err)
			}
			req.Stats = st
		}
		if expContent != "" {
			b, err := os.ReadFile(expContent)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}
			s := string(b)
			req.Content = &s
		}

		format := expFormat
		if format == "" {
			format = c.DefaultFormat
		}
		formats, err := parseFormats(format)
		if err != nil {
			return err
		}

		exp := report.NewExporter(logger, branding(c))
		exp.PageNumbers = c.PageNumbers && !expNoPageNumbers

		var errs error
		for _, f := range formats {
			req.OutputPath, err = outputPath(c.OutputDir, expOutput, m.Filename, f, req.Now)
			if err != nil {
				return err
			}
			if err := exp.Export(f, req); err != nil {
				var xerr *report.ExportError
				if errors.As(err, &xerr) && xerr.Recoverable() {
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
				}
				errs = multierr.Append(errs, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", strings.ToUpper(string(f)), req.OutputPath)
		}
		if errs != nil {
			logger.Debug("export finished with errors", zap.Int("failed", len(multierr.Errors(errs))))
		}
		return errs
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expContent, "content", "", "accumulated analysis log to render as detailed analyses")
	exportCmd.Flags().StringVar(&expStats, "stats", "", "raw statistics record (YAML or JSON)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output file (extension is set per format)")
	exportCmd.Flags().StringVar(&expFormat, "format", "", "docx|pdf|all (default from config)")
	exportCmd.Flags().BoolVar(&expNoPageNumbers, "no-page-numbers", false, "omit the running page footer")
}

func parseFormats(s string) ([]report.Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") || strings.TrimSpace(s) == "" {
		return report.Formats, nil
	}
	f, err := report.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []report.Format{f}, nil
}

// outputPath resolves where format f goes. An explicit path keeps its stem
// and takes the format's extension. Without one, the name is derived from
// the dataset filename and the export time.
func outputPath(dir, explicit, dataset string, f report.Format, now time.Time) (string, error) {
	if explicit != "" {
		ext := filepath.Ext(explicit)
		if strings.EqualFold(ext, f.Ext()) {
			return explicit, nil
		}
		return strings.TrimSuffix(explicit, ext) + f.Ext(), nil
	}
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(dataset), filepath.Ext(dataset))
	if stem == "" || stem == report.MissingFilename || stem == "." {
		stem = "dataset"
	}
	name := fmt.Sprintf("rapport_eda_%s_%s%s", sanitize(stem), now.Format("20060102_150405"), f.Ext())
	return filepath.Join(dir, name), nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
