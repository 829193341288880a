// Package batch drives the per-file extraction loop. Files are processed
// one at a time; a failure on one file is logged and skipped, never fatal
// to the run.
package batch

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/nsetools/factsheet-extract/internal/config"
	"github.com/nsetools/factsheet-extract/internal/csvout"
	"github.com/nsetools/factsheet-extract/internal/extract"
	"github.com/nsetools/factsheet-extract/internal/pdf"
)

// DocumentReader acquires the content of one PDF. Satisfied by pdf.Reader;
// tests substitute a stub.
type DocumentReader interface {
	ReadDocument(path string) (*pdf.Document, error)
}

// FileValidator pre-checks a file before extraction is attempted.
type FileValidator interface {
	ValidateFile(path string) error
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Found         int // candidate PDFs discovered
	Processed     int // files that yielded at least one record
	Skipped       int // unreadable or duplicate files
	NoSectorTable int // readable files without a sector breakdown
	IndexRecords  int
	SectorRows    int
}

// Processor runs the extraction pipelines over a factsheet directory and
// accumulates output rows. All accumulation lives on the Processor; there
// is no package-level state, so independent runs never interfere.
type Processor struct {
	cfg       *config.Config
	discovery *pdf.Discovery
	validator FileValidator
	reader    DocumentReader
	extractor *extract.Extractor

	records    []extract.IndexRecord
	sectorRows []extract.SectorRow
}

// NewProcessor creates a processor wired with the production reader and
// validator.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	expansions, err := cfg.LoadExpansions()
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:       cfg,
		discovery: pdf.NewDiscovery(cfg.MaxFileSize),
		validator: pdf.NewValidator(cfg.MaxFileSize),
		reader:    pdf.NewReader(cfg.MaxFileSize),
		extractor: extract.NewExtractor(expansions),
	}, nil
}

// NewProcessorWithReader creates a processor with injected acquisition
// components.
func NewProcessorWithReader(cfg *config.Config, reader DocumentReader, validator FileValidator) (*Processor, error) {
	p, err := NewProcessor(cfg)
	if err != nil {
		return nil, err
	}
	p.reader = reader
	p.validator = validator
	return p, nil
}

// Run processes every candidate factsheet and writes the aggregate CSV
// tables. Cancellation is honored between files; the per-file work itself
// is not interruptible.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	files, err := p.findFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", p.cfg.FactsheetDir)
	}

	summary := &Summary{Found: len(files)}
	log.Info().Int("files", len(files)).Str("dir", p.cfg.FactsheetDir).Msg("Starting factsheet batch")

	seen := map[string]bool{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch canceled: %w", err)
		}

		if seen[file.Name] {
			log.Warn().Str("file", file.Name).Msg("Duplicate filename in batch, skipping")
			summary.Skipped++
			continue
		}
		seen[file.Name] = true

		p.processFile(file, summary)
	}

	if err := p.writeOutputs(summary); err != nil {
		return summary, err
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("no_sector_table", summary.NoSectorTable).
		Int("index_records", summary.IndexRecords).
		Int("sector_rows", summary.SectorRows).
		Msg("Batch complete")

	return summary, nil
}

// processFile runs the enabled pipelines for one file. Any read failure
// skips the file; extraction itself cannot fail, only come back sparse.
func (p *Processor) processFile(file pdf.FileInfo, summary *Summary) {
	if err := p.validator.ValidateFile(file.Path); err != nil {
		log.Warn().Str("file", file.Name).Err(err).Msg("Invalid PDF, skipping")
		summary.Skipped++
		return
	}

	doc, err := p.reader.ReadDocument(file.Path)
	if err != nil {
		log.Warn().Str("file", file.Name).Err(err).Msg("Unreadable PDF, skipping")
		summary.Skipped++
		return
	}

	indexName := p.extractor.ResolveName(doc)

	if p.cfg.ExtractIndex() {
		rec := p.extractor.BuildRecord(doc, indexName)
		p.records = append(p.records, rec)
		summary.IndexRecords++
	}

	if p.cfg.ExtractSectors() {
		rows := p.extractor.SectorRows(doc, indexName)
		if len(rows) == 0 {
			log.Debug().Str("file", file.Name).Msg("No sector breakdown table")
			summary.NoSectorTable++
		} else {
			p.sectorRows = append(p.sectorRows, rows...)
			summary.SectorRows += len(rows)
		}
	}

	summary.Processed++
	log.Info().Str("file", file.Name).Str("index", indexName).Msg("Extracted")
}

// Records returns the accumulated index records.
func (p *Processor) Records() []extract.IndexRecord {
	return p.records
}

// SectorRows returns the accumulated sector rows.
func (p *Processor) SectorRows() []extract.SectorRow {
	return p.sectorRows
}

func (p *Processor) findFiles() ([]pdf.FileInfo, error) {
	if p.cfg.Only != "" {
		files, err := p.discovery.FindByStem(p.cfg.FactsheetDir, p.cfg.Only)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no factsheet named %q in %s", p.cfg.Only, p.cfg.FactsheetDir)
		}
		return files, nil
	}
	return p.discovery.FindFactsheets(p.cfg.FactsheetDir)
}

// writeOutputs persists the aggregates. Nothing is written when no file
// was processed, so a fully failed batch leaves prior outputs untouched.
func (p *Processor) writeOutputs(summary *Summary) error {
	if summary.Processed == 0 {
		return nil
	}

	if p.cfg.ExtractIndex() {
		if err := csvout.WriteIndexTable(p.cfg.IndexCSVPath(), p.records); err != nil {
			return err
		}
		log.Info().Str("path", p.cfg.IndexCSVPath()).Int("rows", len(p.records)).Msg("Wrote index table")
	}

	if p.cfg.ExtractSectors() {
		if err := csvout.WriteSectorTable(p.cfg.SectorCSVPath(), p.sectorRows); err != nil {
			return err
		}
		log.Info().Str("path", p.cfg.SectorCSVPath()).Int("rows", len(p.sectorRows)).Msg("Wrote sector table")
	}

	return nil
}
