package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/projbank/projbank/internal/config"
	"github.com/projbank/projbank/internal/crawler"
	"github.com/projbank/projbank/internal/dataset"
	"github.com/projbank/projbank/internal/display"
	"github.com/projbank/projbank/internal/reader"
	"github.com/projbank/projbank/internal/record"
	"github.com/projbank/projbank/internal/segment"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Crawl a source portal and extract its one-sheet projects",
	Long: `Refreshes a source whose portal publishes one PDF sheet per project:
  1. Crawls the project listing and downloads every linked sheet
  2. Loads the sheets page by page
  3. Extracts one record per sheet
  4. Reconciles the batch against the persisted collection
  5. Writes the collection atomically`,
	RunE: runScan,
}

var (
	scanSource     string
	scanOut        string
	scanNoDownload bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanSource, "source", "s", "", "source profile name from the config")
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "collection CSV path (overrides the config)")
	scanCmd.Flags().BoolVar(&scanNoDownload, "no-download", false, "skip the crawl, extract from already downloaded sheets")
	_ = scanCmd.MarkFlagRequired("source")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	src, err := cfg.SourceProfile(scanSource)
	if err != nil {
		return err
	}
	outCSV := cfg.OutputCSV
	if scanOut != "" {
		outCSV = scanOut
	}

	display.Header("Portal Scan")
	ctx := cmd.Context()

	display.Step(1, 5, "Collecting PDF sheets...")
	if scanNoDownload {
		display.StepDetail("crawl skipped, using local sheets")
	} else {
		if src.ListingURL == "" {
			return errors.New("source profile has no listing_url, set it or pass --no-download")
		}
		cr, err := crawler.New(crawler.Options{StartURL: src.ListingURL})
		if err != nil {
			return fmt.Errorf("create crawler: %w", err)
		}
		urls, err := cr.CollectPDFURLs(ctx)
		if err != nil {
			return fmt.Errorf("crawl %s: %w", src.ListingURL, err)
		}
		display.StepDetail(fmt.Sprintf("%d sheets linked from %s", len(urls), src.ListingURL))
		for _, u := range urls {
			if _, err := cr.Download(ctx, u, src.PDFDir); err != nil {
				display.StepWarn(err.Error())
			}
		}
		display.StepResult("Downloaded", len(urls))
	}

	display.Step(2, 5, fmt.Sprintf("Loading sheets from %s...", src.PDFDir))
	docs, err := reader.LoadDirectory(src.PDFDir)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return errors.New("no readable PDFs found")
	}
	display.StepResult("Sheets", len(docs))

	display.Step(3, 5, "Extracting one record per sheet...")
	existing, err := dataset.Load(outCSV)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	// One-sheet sources never apply the payback assumption; absent stays
	// absent.
	assembler := record.NewAssembler(record.Options{})
	ids := record.NewIDAllocator(dataset.MaxProjectID(existing) + 1)
	var fresh []record.ProjectRecord
	for _, doc := range docs {
		block := segment.WholeDocument(doc.Pages)
		fields := buildFields(doc, block, src, cfg.Extraction)
		rec := assembler.Assemble(ids.Next(), fields)
		if missing := record.Missing(rec); len(missing) > 0 {
			display.StepDetail(fmt.Sprintf("%s: missing %s",
				doc.Name, strings.Join(missing, ", ")))
		}
		fresh = append(fresh, rec)
	}
	display.StepResult("Records", len(fresh))

	display.Step(4, 5, "Reconciling with the persisted collection...")
	merged, err := dataset.Reconcile(existing, fresh, src.SourceType)
	if err != nil {
		return fmt.Errorf("reconcile collection: %w", err)
	}
	kept := len(merged) - len(fresh)
	display.StepResult("Kept rows", kept)

	display.Step(5, 5, "Writing the collection...")
	written, err := dataset.Save(outCSV, merged)
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	if written != outCSV {
		display.StepWarn(fmt.Sprintf("target locked, wrote %s instead", written))
	}
	display.FileCreated(written)

	display.PrintRunSummary(display.RunInfo{
		SourceName: scanSource,
		SourceType: src.SourceType,
		Region:     src.Region,
		Documents:  len(docs),
		Extracted:  len(fresh),
		KeptRows:   kept,
		TotalRows:  len(merged),
		OutputPath: written,
		Fallback:   written != outCSV,
	})
	return nil
}
