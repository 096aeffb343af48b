// Package tables implements the core of table reconstruction: detecting
// candidate table regions in a binary page mask, clustering positioned OCR
// tokens into row/column grids, reconciling duplicate candidates produced
// by independent backends, inferring header rows, normalizing cell content,
// and scoring extraction quality.
//
// The package never touches the filesystem or network. Raster input arrives
// as an imaging.Mask, OCR input as model.Token values; backend grids arrive
// already shaped as model.Grid.
package tables
