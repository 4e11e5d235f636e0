package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
	"github.com/KaramelBytes/datasight-cli/internal/report"
	"github.com/KaramelBytes/datasight-cli/internal/utils"
)

var (
	repOutputPath string
	repTitle      string
	repDelimiter  string
	repMaxRows    int
	repMaxCats    int
	repBins       int
	repQuantiles  []float64
	repSheetName  string
	repSheetIndex int
	repJSON       bool
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Profile a CSV/TSV/XLSX dataset and produce an HTML report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		lopt := dataset.DefaultOptions()
		if repMaxRows > 0 {
			lopt.MaxRows = repMaxRows
		} else if cfg != nil && cfg.MaxRows > 0 {
			lopt.MaxRows = cfg.MaxRows
		}
		if repDelimiter != "" {
			switch repDelimiter {
			case ",":
				lopt.Delimiter = ','
			case "\t", "tab":
				lopt.Delimiter = '\t'
			case ";":
				lopt.Delimiter = ';'
			default:
				return fmt.Errorf("unsupported --delimiter: %s", repDelimiter)
			}
		}

		opts := report.DefaultOptions()
		if cfg != nil {
			opts.Profile.MaxCategories = cfg.MaxCategories
			opts.Render.Bins = cfg.HistogramBins
			if len(cfg.SampleQuantiles) > 0 {
				opts.Profile.Quantiles = cfg.SampleQuantiles
			}
			if cfg.ReportTitle != "" {
				opts.Title = cfg.ReportTitle
			}
		}
		if cmd.Flags().Changed("max-categories") {
			if repMaxCats < 1 {
				return fmt.Errorf("--max-categories must be >= 1, got %d", repMaxCats)
			}
			opts.Profile.MaxCategories = repMaxCats
		}
		if cmd.Flags().Changed("bins") {
			opts.Render.Bins = repBins
		}
		if cmd.Flags().Changed("quantiles") {
			opts.Profile.Quantiles = repQuantiles
		}
		if repTitle != "" {
			opts.Title = repTitle
		}

		var tbl *dataset.Table
		var err error
		if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			tbl, err = dataset.LoadXLSX(path, lopt, repSheetName, repSheetIndex)
		} else {
			tbl, err = dataset.LoadCSV(path, lopt)
		}
		if err != nil {
			return err
		}

		analysis, err := report.Analyze(tbl, opts)
		if err != nil {
			return err
		}

		if repJSON {
			b, err := utils.PrettyJSON(analysis)
			if err != nil {
				return err
			}
			if repOutputPath != "" {
				if err := utils.SafeWriteFile(repOutputPath, b); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Printf("✓ Wrote profile to %s\n", repOutputPath)
				return nil
			}
			fmt.Println(string(b))
			return nil
		}

		html, err := analysis.HTML()
		if err != nil {
			return err
		}
		out := repOutputPath
		if out == "" {
			base := filepath.Base(path)
			out = strings.TrimSuffix(base, filepath.Ext(base)) + ".report.html"
		}
		if err := utils.SafeWriteFile(out, []byte(html)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("✓ Wrote report to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "path to write the report (default <file>.report.html)")
	reportCmd.Flags().StringVar(&repTitle, "title", "", "report title (overrides config)")
	reportCmd.Flags().StringVar(&repDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportCmd.Flags().IntVar(&repMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	reportCmd.Flags().IntVar(&repMaxCats, "max-categories", 10, "maximum named category buckets per column")
	reportCmd.Flags().IntVar(&repBins, "bins", 20, "number of equal-width histogram bins")
	reportCmd.Flags().Float64SliceVar(&repQuantiles, "quantiles", nil, "quantiles to report for numeric columns")
	reportCmd.Flags().StringVar(&repSheetName, "sheet-name", "", "XLSX: sheet name to profile")
	reportCmd.Flags().IntVar(&repSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	reportCmd.Flags().BoolVar(&repJSON, "json", false, "emit the computed profiles as JSON instead of HTML")
}
