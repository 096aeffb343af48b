package dataconverter

import (
	"github.com/rs/zerolog"

	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/tables"
)

// convertOptions holds configuration for a fluent conversion.
type convertOptions struct {
	cfg   tables.Config
	log   zerolog.Logger
	words pipeline.WordReader
}

// defaultOptions returns the default conversion options: default
// thresholds, no logging, no OCR engine.
func defaultOptions() convertOptions {
	return convertOptions{
		cfg: tables.DefaultConfig(),
		log: zerolog.Nop(),
	}
}
