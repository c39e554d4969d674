package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-dms/internal/dataset"
	"github.com/inodb/vibe-dms/internal/output"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the score files of the data directory",
		Example: `  vibe-dms list
  vibe-dms list --data-dir scores/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd.Context(), zap.NewNop())
			if err != nil {
				return err
			}
			return writeSummaries(cmd.OutOrStdout(), catalog.Summaries())
		},
	}
}

func writeSummaries(w io.Writer, summaries []dataset.Summary) error {
	tw := output.NewTabWriter(w)
	if err := tw.WriteHeader([]string{"#name", "rows", "residues", "min_median", "median", "max_median", "flags"}); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Name,
			strconv.Itoa(s.Rows),
			strings.Join(s.AminoAcids, ""),
			formatScore(s.MinMedian, s.Scored),
			formatScore(s.Median, s.Scored),
			formatScore(s.MaxMedian, s.Scored),
			strings.Join(s.Flags, ","),
		}
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// formatScore prints a summary score to 4 decimals, or "" when nothing was scored.
func formatScore(v float64, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%.4f", v)
}
