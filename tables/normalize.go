package tables

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// currencyAndSeparators matches the currency symbols and thousands
// separators stripped before numeric parsing.
var currencyAndSeparators = regexp.MustCompile(`[$£€¥₹,]`)

// NormalizeCell cleans and canonicalizes one cell: Unicode NFC, whitespace
// collapsing, removal of null bytes and BOMs, CR replacement, quote
// doubling for safe serialization, then best-effort numeric
// canonicalization. Parse failures leave the cleaned text unchanged;
// normalization never fails.
func NormalizeCell(cell string) string {
	if cell == "" {
		return ""
	}

	cell = norm.NFC.String(cell)
	cell = strings.ReplaceAll(cell, "\x00", "")
	cell = strings.ReplaceAll(cell, "\uFEFF", "")
	cell = strings.ReplaceAll(cell, "\r", " ")
	cell = strings.Join(strings.Fields(cell), " ")
	cell = strings.ReplaceAll(cell, `"`, `""`)
	cell = normalizeNumeric(cell)

	return strings.TrimSpace(cell)
}

// normalizeNumeric canonicalizes numeric-looking cells: currency symbols
// and thousands separators are dropped, percentages are re-emitted as
// <value>%, decimals collapse to integers when they have no fractional
// part or keep up to 6 significant digits, and integers lose leading
// zeros and stray plus signs.
func normalizeNumeric(cell string) string {
	if cell == "" {
		return cell
	}

	numeric := currencyAndSeparators.ReplaceAllString(cell, "")

	if strings.Contains(cell, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(numeric, "%", "")), 64)
		if err != nil {
			return cell
		}
		return formatPercent(v)
	}

	if strings.Contains(numeric, ".") {
		v, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			return cell
		}
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', 6, 64)
	}

	n, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return cell
	}
	return strconv.FormatInt(n, 10)
}

// formatPercent keeps one decimal for whole-number percentages (45 -> 45.0%)
// and minimal digits otherwise.
func formatPercent(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
