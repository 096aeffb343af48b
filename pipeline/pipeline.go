// Package pipeline orchestrates file conversion: backend dispatch by file
// type, reconciliation of candidate grids, finalization, and quality
// scoring. Component failures are caught at their own boundary and become
// warnings; only total failure surfaces as an error.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/romanch203/DataConverterPro/docx"
	"github.com/romanch203/DataConverterPro/htmldoc"
	"github.com/romanch203/DataConverterPro/model"
	"github.com/romanch203/DataConverterPro/pdf"
	"github.com/romanch203/DataConverterPro/tables"
	"github.com/romanch203/DataConverterPro/xlsx"
)

// WordReader produces positioned word tokens from encoded image bytes.
// Satisfied by ocr.Client; tests substitute fakes.
type WordReader interface {
	Words(image []byte) ([]model.Token, error)
}

// Conversion is the result of converting one file.
type Conversion struct {
	ID         string
	SourceFile string
	Tables     []model.Table
	Quality    model.QualityMetrics
	Warnings   []string
}

// Pipeline converts documents into finalized tables. Safe for concurrent
// use: OCR calls are serialized internally because gosseract clients
// hold per-call engine state.
type Pipeline struct {
	cfg   tables.Config
	log   zerolog.Logger
	words WordReader
	ocrMu sync.Mutex

	detector   *tables.RegionDetector
	clusterer  *tables.TokenClusterer
	reconciler *tables.Reconciler
	finalizer  *tables.Finalizer
}

// New builds a pipeline. words may be nil, disabling the raster path:
// image inputs and the PDF lattice backend then degrade to warnings.
func New(cfg tables.Config, log zerolog.Logger, words WordReader) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}

	p := &Pipeline{
		cfg:        cfg,
		log:        log.With().Str("component", "pipeline").Logger(),
		words:      words,
		detector:   tables.NewRegionDetector(),
		clusterer:  tables.NewTokenClusterer(),
		reconciler: tables.NewReconciler(),
		finalizer:  tables.NewFinalizer(),
	}
	for _, err := range []error{
		p.detector.Configure(cfg),
		p.clusterer.Configure(cfg),
		p.reconciler.Configure(cfg),
		p.finalizer.Configure(cfg),
	} {
		if err != nil {
			return nil, fmt.Errorf("pipeline config: %w", err)
		}
	}
	return p, nil
}

// ConvertFile reads and converts one file from disk.
func (p *Pipeline) ConvertFile(path string) (*Conversion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "reading %s", filepath.Base(path))
	}
	return p.Convert(filepath.Base(path), data)
}

// Convert dispatches on the filename extension and runs the matching
// backend set over data.
func (p *Pipeline) Convert(filename string, data []byte) (*Conversion, error) {
	var (
		grids    []model.Grid
		warnings []string
		err      error
	)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		grids, err = p.convertDOCX(data)
	case ".xlsx":
		grids, err = p.convertXLSX(data)
	case ".html", ".htm":
		grids, err = p.convertHTML(data)
	case ".pdf":
		grids, warnings, err = p.convertPDF(data)
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif":
		grids, err = p.convertImage(data)
	default:
		return nil, convErr(FailureMalformedInput, nil, "unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	return p.finish(filename, grids, warnings)
}

// finish reconciles, finalizes, and scores the candidate grids.
func (p *Pipeline) finish(filename string, grids []model.Grid, warnings []string) (*Conversion, error) {
	reconciled := p.reconciler.Reconcile(grids)

	var finalized []model.Table
	var scored []model.Grid
	for _, g := range reconciled {
		if g.IsEmpty() {
			continue
		}
		table := p.finalizer.Finalize(g)
		finalized = append(finalized, table)
		scored = append(scored, table.Grid)
	}

	if len(finalized) == 0 {
		return nil, convErr(FailureNoData, nil, "no tables found in %s", filename)
	}

	conv := &Conversion{
		ID:         uuid.NewString(),
		SourceFile: filename,
		Tables:     finalized,
		Quality:    tables.ScoreGrids(scored),
		Warnings:   warnings,
	}

	p.log.Info().
		Str("file", filename).
		Int("tables", len(finalized)).
		Float64("accuracy", conv.Quality.AccuracyScore).
		Msg("conversion complete")

	return conv, nil
}

func (p *Pipeline) convertDOCX(data []byte) ([]model.Grid, error) {
	r, err := docx.NewReader(data)
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "reading DOCX")
	}
	defer r.Close()
	return r.Tables(), nil
}

func (p *Pipeline) convertXLSX(data []byte) ([]model.Grid, error) {
	r, err := xlsx.NewReader(data)
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "reading XLSX")
	}
	defer r.Close()

	grids, err := r.Grids()
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "reading XLSX sheets")
	}
	return grids, nil
}

func (p *Pipeline) convertHTML(data []byte) ([]model.Grid, error) {
	r, err := htmldoc.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "parsing HTML")
	}
	defer r.Close()
	return r.Tables(), nil
}

// convertPDF runs every PDF backend and aggregates per-backend outcomes.
// A failing backend becomes a warning; its grids up to the failure point
// are kept.
func (p *Pipeline) convertPDF(data []byte) ([]model.Grid, []string, error) {
	doc, err := pdf.NewFromBytes(data)
	if err != nil {
		return nil, nil, convErr(FailureMalformedInput, err, "reading PDF")
	}
	defer doc.Close()

	backends := []pdf.Backend{pdf.TextBackend{}}
	if p.words != nil {
		backends = append(backends, pdf.LatticeBackend{Extractor: p})
	}

	var grids []model.Grid
	var warnings []string
	for _, res := range pdf.ExtractAll(doc, backends) {
		if res.Err != nil {
			p.log.Warn().Str("backend", res.Backend).Err(res.Err).Msg("backend failed")
			warnings = append(warnings, fmt.Sprintf("backend %s failed: %v", res.Backend, res.Err))
		}
		grids = append(grids, res.Grids...)
	}
	return grids, warnings, nil
}

func (p *Pipeline) convertImage(data []byte) ([]model.Grid, error) {
	if p.words == nil {
		return nil, convErr(FailureBackend, nil, "image conversion requires OCR support")
	}
	return p.extractRaster(data)
}
