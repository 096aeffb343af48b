package pdf

import "github.com/romanch203/DataConverterPro/model"

// Backend is one independent table extraction strategy over a PDF.
type Backend interface {
	// Name identifies the backend in logs and results.
	Name() string
	// Extract returns every table candidate the backend finds. An error
	// means the backend could not run at all; finding nothing is not an
	// error.
	Extract(doc *Document) ([]model.Grid, error)
}

// Result carries one backend's outcome. Backends are allowed to fail
// individually; the caller decides whether any grids survived overall.
type Result struct {
	Backend string
	Grids   []model.Grid
	Err     error
}

// ExtractAll runs every backend in declaration order and collects their
// results. Backends run sequentially: the lattice backend holds rendered
// page rasters, and bounding peak memory matters more here than latency.
func ExtractAll(doc *Document, backends []Backend) []Result {
	results := make([]Result, 0, len(backends))
	for _, b := range backends {
		grids, err := b.Extract(doc)
		results = append(results, Result{Backend: b.Name(), Grids: grids, Err: err})
	}
	return results
}
