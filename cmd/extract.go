package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/projbank/projbank/internal/config"
	"github.com/projbank/projbank/internal/dataset"
	"github.com/projbank/projbank/internal/display"
	"github.com/projbank/projbank/internal/extract"
	"github.com/projbank/projbank/internal/reader"
	"github.com/projbank/projbank/internal/record"
	"github.com/projbank/projbank/internal/segment"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract projects from multi-project catalog PDFs",
	Long: `Reads every catalog PDF of a source profile and refreshes that source's
partition of the collection:
  1. Loads the PDFs page by page
  2. Segments each catalog into per-project blocks
  3. Extracts and derives the project fields
  4. Reconciles the batch against the persisted collection
  5. Writes the collection atomically`,
	RunE: runExtract,
}

var (
	extractSource string
	extractDir    string
	extractOut    string
)

func init() {
	extractCmd.Flags().StringVarP(&extractSource, "source", "s", "", "source profile name from the config")
	extractCmd.Flags().StringVarP(&extractDir, "dir", "d", "", "PDF directory (overrides the profile)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "collection CSV path (overrides the config)")
	_ = extractCmd.MarkFlagRequired("source")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	src, err := cfg.SourceProfile(extractSource)
	if err != nil {
		return err
	}
	pdfDir := src.PDFDir
	if extractDir != "" {
		pdfDir = extractDir
	}
	outCSV := cfg.OutputCSV
	if extractOut != "" {
		outCSV = extractOut
	}

	display.Header("Catalog Extraction")

	display.Step(1, 5, fmt.Sprintf("Loading PDFs from %s...", pdfDir))
	docs, err := reader.LoadDirectory(pdfDir)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return errors.New("no readable PDFs found, run 'projbank scan' or point --dir at the catalogs")
	}
	pages := 0
	for _, doc := range docs {
		pages += len(doc.Pages)
		display.StepDetail(doc.Name)
	}
	display.StepResult("Documents", len(docs))

	display.Step(2, 5, "Segmenting catalogs into project blocks...")
	type docBlock struct {
		doc   reader.Document
		block segment.Block
	}
	var blocks []docBlock
	for _, doc := range docs {
		docBlocks, err := segment.Projects(doc.Pages)
		if err != nil {
			display.StepWarn(fmt.Sprintf("%s: %v", doc.Name, err))
			continue
		}
		for _, b := range docBlocks {
			blocks = append(blocks, docBlock{doc: doc, block: b})
		}
	}
	display.StepResult("Projects", len(blocks))

	display.Step(3, 5, "Extracting fields...")
	assembler := record.NewAssembler(record.Options{
		PaybackFallbackYears: cfg.Extraction.PaybackFallbackYears,
	})
	ids := record.NewIDAllocator(1)
	var fresh []record.ProjectRecord
	for _, db := range blocks {
		fields := buildFields(db.doc, db.block, src, cfg.Extraction)
		rec := assembler.Assemble(ids.Next(), fields)
		if missing := record.Missing(rec); len(missing) > 0 {
			display.StepDetail(fmt.Sprintf("%s p.%d: missing %s",
				db.doc.Name, db.block.StartPage, strings.Join(missing, ", ")))
		}
		fresh = append(fresh, rec)
	}
	display.StepResult("Records", len(fresh))

	display.Step(4, 5, "Reconciling with the persisted collection...")
	existing, err := dataset.Load(outCSV)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
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
		SourceName: extractSource,
		SourceType: src.SourceType,
		Region:     src.Region,
		Documents:  len(docs),
		Pages:      pages,
		Extracted:  len(fresh),
		KeptRows:   kept,
		TotalRows:  len(merged),
		OutputPath: written,
		Fallback:   written != outCSV,
	})
	return nil
}

// buildFields runs every extractor against one project block and gathers
// the raw results, filename fallbacks included.
func buildFields(doc reader.Document, block segment.Block, src config.Source, opts config.Extraction) record.Fields {
	text := extract.RepairOCR(block.Text)

	title, ok := extract.Title(text)
	if !ok {
		title, ok = extract.TitleFromLines(text)
	}
	if !ok {
		title = extract.TitleFromFilename(doc.Name)
	}

	sector, ok := extract.Sector(text)
	if !ok {
		sector = extract.SectorFromFilename(doc.Name)
	}

	region, ok := extract.Region(text, doc.Path)
	if !ok {
		region = src.Region
	}

	sourceType := src.SourceType
	if sourceType == "" && region != "" {
		sourceType = "CRI " + region
	}

	f := record.Fields{
		Title:      title,
		Sector:     sector,
		Region:     region,
		SourcePath: absPath(doc.Path),
		PageNumber: block.StartPage,
		SourceType: sourceType,
	}
	f.SubSector, _ = extract.SubSector(text)
	f.Description, _ = extract.DescriptionLayout(extract.RepairOCR(doc.LeftColumn(block.StartPage)), text)
	f.Province, _ = extract.Province(text, region, opts.ProvinceMaxLen)
	f.IndustrialZone = extract.JoinZones(extract.Zones(text))
	f.PublicationDate, _ = extract.PublicationDate(doc.Cover(), doc.Name)

	if v, ok := extract.Investment(text); ok {
		f.EstimatedInvestmentMAD = &v
	}
	if v, ok := extract.Payback(text); ok {
		f.PaybackPeriodYears = &v
	}
	if v, ok := extract.ROI(text); ok {
		f.ROIEstimated = &v
	}
	if v, ok := extract.LandArea(text); ok {
		f.RequiredLandAreaM2 = &v
	}
	if v, ok := extract.BuildingArea(text); ok {
		f.RequiredBuildingAreaM2 = &v
	}
	return f
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
