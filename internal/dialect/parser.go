package dialect

// The tolerant parser never errors on malformed bytes: under a wrong
// candidate dialect it must still produce a Table so the scorer can
// punish the candidate for it. A strict, error-returning CSV parser
// (encoding/csv) is unsuitable for this because it aborts on the very
// malformations scoring depends on observing — see DESIGN.md.

// parse tokenizes sample into a Table under the given candidate,
// capped at maxRows terminators.
func parse(sample []byte, cand candidate, maxRows int) Table {
	t := Table{Terminator: LF}
	if len(sample) == 0 {
		return t
	}

	var row Row
	var field []byte
	inQuotes := false
	rowCount := 0
	termSet := false
	fieldQuoted := false

	flushField := func() {
		row = append(row, field)
		field = nil
		fieldQuoted = false
	}
	flushRow := func() {
		flushField()
		// Every terminated line becomes a row here, blank lines
		// included; trailing blank rows are dropped after the whole
		// sample is parsed (spec.md §4.2).
		t.Rows = append(t.Rows, row)
		row = nil
	}

	i := 0
	n := len(sample)
	for i < n {
		if rowCount >= maxRows {
			break
		}
		b := sample[i]

		if inQuotes {
			if cand.hasEscape && cand.escape != cand.quote && b == cand.escape && i+1 < n {
				field = append(field, sample[i+1])
				i += 2
				continue
			}
			if cand.hasQuote && b == cand.quote {
				if i+1 < n && sample[i+1] == cand.quote {
					field = append(field, cand.quote)
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			field = append(field, b)
			i++
			continue
		}

		if cand.hasQuote && b == cand.quote && len(field) == 0 && !fieldQuoted {
			inQuotes = true
			fieldQuoted = true
			i++
			continue
		}
		if cand.hasEscape && cand.escape != cand.quote && b == cand.escape && i+1 < n {
			field = append(field, sample[i+1])
			i += 2
			continue
		}
		if b == cand.delimiter {
			flushField()
			i++
			continue
		}

		if term, size := matchTerminator(sample, i); term >= 0 {
			if !termSet {
				t.Terminator = Terminator(term)
				termSet = true
			}
			flushRow()
			rowCount++
			i += size
			continue
		}

		field = append(field, b)
		i++
	}

	// Unterminated quoted fields and trailing partial rows at
	// end-of-input are closed silently.
	if inQuotes || len(field) > 0 || len(row) > 0 {
		flushRow()
	}

	// Empty trailing lines are discarded: trailing rows made of a
	// single empty field are dropped, while blank lines earlier in the
	// sample stay as rows.
	for len(t.Rows) > 0 {
		last := t.Rows[len(t.Rows)-1]
		if len(last) != 1 || len(last[0]) != 0 {
			break
		}
		t.Rows = t.Rows[:len(t.Rows)-1]
	}

	t.AnyQuoted = cellsContainSpecialBytes(t.Rows, cand)

	return t
}

// matchTerminator checks for \r\n, \n, \r at position i, in that
// precedence, returning the Terminator tag and byte length, or -1 if
// no terminator starts at i.
func matchTerminator(sample []byte, i int) (int, int) {
	switch sample[i] {
	case '\r':
		if i+1 < len(sample) && sample[i+1] == '\n' {
			return int(CRLF), 2
		}
		return int(CR), 1
	case '\n':
		return int(LF), 1
	default:
		return -1, 0
	}
}

// cellsContainSpecialBytes reports whether any cell's raw bytes
// contain the delimiter, quote, or a terminator byte — such a cell
// requires quoting under this dialect. A quoted field whose content
// holds none of these bytes does not count.
func cellsContainSpecialBytes(rows []Row, cand candidate) bool {
	for _, row := range rows {
		for _, cell := range row {
			for _, b := range cell {
				if b == cand.delimiter || b == '\n' || b == '\r' {
					return true
				}
				if cand.hasQuote && b == cand.quote {
					return true
				}
			}
		}
	}
	return false
}
