package encoding

import "strconv"

// fieldSep separates the mean and the standard error on a result line.
const fieldSep = "   "

// FormatFloat formats v the way a default C++ ostream does: six significant
// digits, trailing zeros dropped, exponent form outside [1e-4, 1e6).
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// FormatPair renders one result line: "<mean>   <stderr>".
func FormatPair(mean, stderr float64) string {
	return FormatFloat(mean) + fieldSep + FormatFloat(stderr)
}
