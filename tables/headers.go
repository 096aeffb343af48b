package tables

import (
	"fmt"
	"regexp"
	"strings"
)

// numericLike matches cells made of digits, decimal separators, percent
// signs, and minus only. Header cells are typically anything else.
var numericLike = regexp.MustCompile(`^[\d.,%-]+$`)

// invalidHeaderChars strips everything outside word characters, whitespace,
// and hyphens from a header cell.
var invalidHeaderChars = regexp.MustCompile(`[^\w\s-]`)

var innerWhitespace = regexp.MustCompile(`\s+`)

// HasHeaders decides whether a grid's first row names its columns. Grids
// with fewer than two rows never qualify. Each non-numeric-looking cell in
// row 0 counts once toward the indicator; a non-numeric cell sitting above
// a numeric-looking row-1 cell counts again (label over value). The row is
// a header when the indicator exceeds half the column count.
func HasHeaders(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}

	first := rows[0]
	second := rows[1]

	indicators := 0
	for i, cell := range first {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		firstIsText := !numericLike.MatchString(cell)
		if firstIsText {
			indicators++
		}
		if i < len(second) {
			below := strings.TrimSpace(second[i])
			if below != "" && firstIsText && numericLike.MatchString(below) {
				indicators++
			}
		}
	}

	return float64(indicators) > float64(len(first))*0.5
}

// SanitizeHeaders cleans a detected header row into safe, unique column
// names: blanks become Column_<n>, disallowed characters are stripped,
// internal whitespace collapses to a single underscore, and repeats gain a
// _<n> suffix counting from 1.
func SanitizeHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			cleaned[i] = placeholderName(i)
			continue
		}
		h = invalidHeaderChars.ReplaceAllString(h, "")
		h = innerWhitespace.ReplaceAllString(strings.TrimSpace(h), "_")
		if h == "" {
			h = placeholderName(i)
		}
		cleaned[i] = h
	}

	// Deterministic left-to-right uniqueness pass.
	counts := make(map[string]int, len(cleaned))
	unique := make([]string, len(cleaned))
	for i, h := range cleaned {
		if n, seen := counts[h]; seen {
			counts[h] = n + 1
			unique[i] = fmt.Sprintf("%s_%d", h, n+1)
		} else {
			counts[h] = 0
			unique[i] = h
		}
	}
	return unique
}

// SyntheticHeaders returns the placeholder header row Column_1..Column_k.
func SyntheticHeaders(cols int) []string {
	headers := make([]string, cols)
	for i := range headers {
		headers[i] = placeholderName(i)
	}
	return headers
}

func placeholderName(i int) string {
	return fmt.Sprintf("Column_%d", i+1)
}
