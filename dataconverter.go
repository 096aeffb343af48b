// Package dataconverter provides a fluent API for reconstructing tables
// from documents and scans.
//
// Basic usage:
//
//	tables, warnings, err := dataconverter.Open("report.pdf").Tables()
//	if err != nil {
//	    // handle error
//	}
//	for _, w := range warnings {
//	    log.Println("warning:", w)
//	}
//
// With options:
//
//	csv, _, err := dataconverter.Open("scan.png").
//	    WithOCR(ocrClient).
//	    WithConfig(cfg).
//	    CSV()
//
// For server deployments and batch work, the lower-level pipeline package
// is also available.
package dataconverter

import (
	"github.com/rs/zerolog"

	"github.com/romanch203/DataConverterPro/export"
	"github.com/romanch203/DataConverterPro/model"
	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/tables"
)

// Converter accumulates fluent configuration for one conversion. Terminal
// operations (Tables, CSV, Result) run the pipeline.
type Converter struct {
	filename string
	options  convertOptions
}

// Open names a file for conversion. The file is read when a terminal
// operation runs.
//
// Example:
//
//	tables, warnings, err := dataconverter.Open("report.docx").Tables()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// WithConfig replaces the extraction thresholds.
func (c *Converter) WithConfig(cfg tables.Config) *Converter {
	c.options.cfg = cfg
	return c
}

// WithOCR supplies an OCR engine, enabling image inputs and the PDF
// lattice backend. Without one, those paths degrade per the pipeline's
// failure policy.
func (c *Converter) WithOCR(words pipeline.WordReader) *Converter {
	c.options.words = words
	return c
}

// WithLogger routes pipeline logging to the given logger.
func (c *Converter) WithLogger(log zerolog.Logger) *Converter {
	c.options.log = log
	return c
}

// Result runs the conversion and returns the full outcome.
func (c *Converter) Result() (*pipeline.Conversion, error) {
	p, err := pipeline.New(c.options.cfg, c.options.log, c.options.words)
	if err != nil {
		return nil, err
	}
	return p.ConvertFile(c.filename)
}

// Tables runs the conversion and returns the finalized tables plus any
// backend warnings.
func (c *Converter) Tables() ([]model.Table, []string, error) {
	conv, err := c.Result()
	if err != nil {
		return nil, nil, err
	}
	return conv.Tables, conv.Warnings, nil
}

// CSV runs the conversion and renders the tables as CSV, with banner
// separators when a document yields more than one table.
func (c *Converter) CSV() (string, []string, error) {
	conv, err := c.Result()
	if err != nil {
		return "", nil, err
	}
	out, err := export.CSVString(conv.Tables)
	if err != nil {
		return "", nil, err
	}
	return out, conv.Warnings, nil
}
