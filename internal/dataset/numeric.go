package dataset

import (
	"math"
	"strconv"
	"strings"
)

// isNullToken reports whether a cell is blank or a conventional missing-value marker.
func isNullToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))) {
	case "", "na", "n/a", "nan", "null", "none", "-":
		return true
	}
	return false
}

// parseNumeric coerces a raw cell to a finite float. Empty cells, non-numeric
// tokens, NaN and infinities all report false.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "%") {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	}
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if opt.AutoLocale && dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
		if thou == 0 {
			for _, sep := range []rune{',', '.', ' '} {
				if sep != dec {
					raw = strings.ReplaceAll(raw, string(sep), "")
				}
			}
		}
	}
	if dec == 0 {
		dec = '.'
	}
	if thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
