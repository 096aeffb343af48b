package server

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// allowedExtensions whitelists upload types the pipeline can dispatch.
var allowedExtensions = map[string]bool{
	".docx": true,
	".xlsx": true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// magic prefixes by extension family. OOXML documents are zip archives.
var magicPrefixes = map[string][][]byte{
	".pdf":  {[]byte("%PDF")},
	".docx": {[]byte("PK")},
	".xlsx": {[]byte("PK")},
	".png":  {{0x89, 'P', 'N', 'G'}},
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".bmp":  {[]byte("BM")},
	".tiff": {[]byte("II*\x00"), []byte("MM\x00*")},
	".tif":  {[]byte("II*\x00"), []byte("MM\x00*")},
}

// validateUpload checks the filename extension against the whitelist and,
// where the format has a stable signature, the content's magic bytes.
// HTML has no signature and is accepted on extension alone.
func validateUpload(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if len(data) == 0 {
		return fmt.Errorf("empty file")
	}

	prefixes, ok := magicPrefixes[ext]
	if !ok {
		return nil
	}
	for _, p := range prefixes {
		if bytes.HasPrefix(data, p) {
			return nil
		}
	}
	return fmt.Errorf("file content does not match %s format", ext)
}
