// Package barcode derives the fixed-length identifying code printed on
// item labels. The code is a stable 12-digit string, not a checksummed
// EAN-13 symbol.
package barcode

import "strings"

// Length is the exact number of digits in every generated code.
const Length = 12

// Fallback is the code used when the serial contains nothing usable.
const Fallback = "000000000000"

// Generate derives the identifying code from an item's serial field: every
// non-digit character is stripped, the rest is truncated to Length digits
// or right-padded with '0'. Generation never fails; when the serial holds
// no digits at all the result is Fallback and degraded is true so callers
// can log the degradation instead of silently accepting a placeholder.
func Generate(serial string) (code string, degraded bool) {
	var b strings.Builder
	for _, r := range serial {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == Length {
			break
		}
	}

	if b.Len() == 0 {
		return Fallback, true
	}

	code = b.String()
	if len(code) < Length {
		code += strings.Repeat("0", Length-len(code))
	}
	return code, false
}
