package mintbump

import "strings"

// NaturalCompare compares a and b with runs of digits taken as integers and
// everything else compared byte by byte, so "9" < "10" and
// "1.0.0-alpha.2" < "1.0.0-alpha.10". A string that is a prefix of the other
// sorts first. Strings equal under these rules (e.g. "01" and "1") fall back
// to plain byte order, keeping the result total.
func NaturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]

		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}

			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}

			continue
		}

		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}

		i++
		j++
	}

	switch ra, rb := len(a)-i, len(b)-j; {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}

	return strings.Compare(a, b)
}

// compareDigits compares two runs of ASCII digits by numeric value without
// converting them, so runs of any length are safe.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
