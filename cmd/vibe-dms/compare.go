package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-dms/internal/compare"
	"github.com/inodb/vibe-dms/internal/figure"
	"github.com/inodb/vibe-dms/internal/output"
)

func newCompareCmd() *cobra.Command {
	var (
		flags       []string
		outputFile  string
		figuresFile string
		plotFile    string
	)

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Merge two score files and write the colored merged view",
		Long: `Join two score files of the data directory on position, color rows by the
selected flag columns and write the merged view. The first four flags take
effect; when a row matches several, the last one wins.

Output is tab-delimited unless the output file ends in .xlsx.`,
		Example: `  vibe-dms compare escape_ab8307.csv escape_ab8314.csv
  vibe-dms compare a.csv b.csv --flags site_1,c_c -o merged.xlsx
  vibe-dms compare a.csv b.csv --figures figures.json --plot scatter.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := compare.Selection{File1: args[0], File2: args[1], Flags: flags}
			if sel.Skip() {
				return fmt.Errorf("choose two different files")
			}
			if len(flags) > compare.MaxFlags {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: only the first %d flags are used: %s\n",
					compare.MaxFlags, strings.Join(compare.Truncate(flags), ","))
			}

			catalog, err := loadCatalog(cmd.Context(), zap.NewNop())
			if err != nil {
				return err
			}
			res, err := compare.Run(catalog, sel)
			if err != nil {
				return err
			}

			if err := writeMerged(cmd.OutOrStdout(), outputFile, res); err != nil {
				return err
			}
			if figuresFile != "" {
				if err := writeFigures(figuresFile, res); err != nil {
					return err
				}
			}

			if plotFile != "" {
				if err := writePlot(plotFile, sel, res); err != nil {
					return err
				}
			}

			printSummary(cmd.ErrOrStderr(), compare.Summarize(res.Points))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&flags, "flags", nil, "flag columns used for coloring, in priority order (last wins)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file, .tsv or .xlsx (default: stdout, tab-delimited)")
	cmd.Flags().StringVar(&figuresFile, "figures", "", "also write the three Plotly figures as JSON")
	cmd.Flags().StringVar(&plotFile, "plot", "", "also render the scatter plot as a PNG image")

	return cmd
}

func writeMerged(stdout io.Writer, path string, res *compare.Result) error {
	if path == "" {
		return output.WriteFrame(output.NewTabWriter(stdout), res.Merged)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	var w output.RowWriter
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		xw, err := output.NewXLSXWriter(f)
		if err != nil {
			return err
		}
		w = xw
	} else {
		w = output.NewTabWriter(f)
	}
	if err := output.WriteFrame(w, res.Merged); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeFigures(path string, res *compare.Result) error {
	b, err := json.MarshalIndent(res.Figures(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal figures: %w", err)
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

func writePlot(path string, sel compare.Selection, res *compare.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := figure.RenderScatterPNG(f, res.Points, sel.ScatterOptions()); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, s compare.Summary) {
	fmt.Fprintf(w, "Shared positions: %d\n", s.Rows)
	for _, c := range s.Categories {
		fmt.Fprintf(w, "  %-10s %d\n", c.Category, c.Rows)
	}
	if math.IsNaN(s.Pearson) {
		fmt.Fprintf(w, "Pearson r: n/a (%d paired scores)\n", s.Paired)
		return
	}
	fmt.Fprintf(w, "Pearson r: %.4f (%d paired scores)\n", s.Pearson, s.Paired)
}
