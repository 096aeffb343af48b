// Package pdf extracts tabular data from PDF documents.
//
// Extraction runs through pluggable backends: a text backend that splits
// the embedded text layer into columns, and a lattice backend that renders
// pages and hands the raster to a region-based extractor. Backends run
// independently; their candidate grids are reconciled downstream.
package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the resolution used when rasterizing pages for the lattice
// backend. 150 keeps ruling lines crisp without ballooning memory.
const renderDPI = 150

// Document wraps one open PDF.
type Document struct {
	doc *fitz.Document
}

// Open opens a PDF file for reading.
func Open(filename string) (*Document, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &Document{doc: doc}, nil
}

// NewFromBytes reads a PDF from an in-memory byte slice.
func NewFromBytes(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Close releases resources associated with the document.
func (d *Document) Close() error {
	if d.doc != nil {
		err := d.doc.Close()
		d.doc = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// PageText returns the embedded text layer of page n (0-indexed).
func (d *Document) PageText(n int) (string, error) {
	text, err := d.doc.Text(n)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", n+1, err)
	}
	return text, nil
}

// PageImage rasterizes page n (0-indexed) at renderDPI.
func (d *Document) PageImage(n int) (image.Image, error) {
	img, err := d.doc.ImageDPI(n, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("page %d render: %w", n+1, err)
	}
	return img, nil
}
