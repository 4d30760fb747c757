package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/projbank/projbank/internal/config"
	"github.com/projbank/projbank/internal/dataset"
	"github.com/projbank/projbank/internal/display"
	"github.com/projbank/projbank/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as an XLSX workbook",
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "workbook path (default: collection path with .xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	records, err := dataset.Load(cfg.OutputCSV)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	if len(records) == 0 {
		return errors.New("collection is empty, run 'projbank extract' or 'projbank scan' first")
	}

	out := exportOut
	if out == "" {
		out = strings.TrimSuffix(cfg.OutputCSV, ".csv") + ".xlsx"
	}
	if err := export.WriteXLSX(out, records); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	display.Success(fmt.Sprintf("Exported %d projects", len(records)))
	display.FileCreated(out)
	return nil
}
