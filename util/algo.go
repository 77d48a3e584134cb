package util

// NaturalCompare orders two strings the way people order file names:
// digit runs compare by numeric value, everything else byte by byte.
// It returns -1, 0 or +1.
//
// When two digit runs hold the same value but differ in length ("01" and "1"),
// the run with more leading zeros sorts first and the comparison ends there.
func NaturalCompare(a, b string) int {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ca, cb := a[ai], b[bi]
		if isDigit(ca) && isDigit(cb) {
			aEnd := digitRunEnd(a, ai)
			bEnd := digitRunEnd(b, bi)
			if res := compareDigitRuns(a[ai:aEnd], b[bi:bEnd]); res != 0 {
				return res
			}
			ai, bi = aEnd, bEnd
			continue
		}
		if ca < cb {
			return -1
		}
		if ca > cb {
			return +1
		}
		ai += 1
		bi += 1
	}

	switch {
	case ai < len(a):
		return +1
	case bi < len(b):
		return -1
	default:
		return 0
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitRunEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i += 1
	}
	return i
}

func compareDigitRuns(a, b string) int {
	sa := trimZeros(a)
	sb := trimZeros(b)

	// more significant digits means a bigger number
	if len(sa) != len(sb) {
		if len(sa) < len(sb) {
			return -1
		}
		return +1
	}
	for i := 0; i < len(sa); i += 1 {
		if sa[i] < sb[i] {
			return -1
		}
		if sa[i] > sb[i] {
			return +1
		}
	}

	// same value: padded run first
	switch {
	case len(a) > len(b):
		return -1
	case len(a) < len(b):
		return +1
	default:
		return 0
	}
}

func trimZeros(run string) string {
	i := 0
	for i < len(run) && run[i] == '0' {
		i += 1
	}
	return run[i:]
}
