// Package dialect implements the Table Uniformity Method (TUM) CSV dialect
// scorer: candidate dialect enumeration, tolerant parsing, per-column type
// inference, and the uniformity scoring function used to pick a winner.
package dialect

import "fmt"

// Detection errors returned by Sniffer. Callers should use errors.Is
// against these sentinels rather than comparing error strings.
var (
	// ErrInvalidInput is returned when the sample is empty or
	// whitespace-only, or has fewer rows than MinRows requires (a final
	// line without a terminator counts as a row).
	ErrInvalidInput = fmt.Errorf("dialect: invalid input")
	// ErrNoValidDialect is returned when every candidate dialect scored
	// zero or produced fewer than MinRows rows.
	ErrNoValidDialect = fmt.Errorf("dialect: no valid dialect found")
	// ErrIO is returned when the supplied reader failed before the
	// sample cap was reached.
	ErrIO = fmt.Errorf("dialect: read failed")
	// ErrCSV is reserved for unrecoverable parser backend states; the
	// tolerant parser in this package never produces it.
	ErrCSV = fmt.Errorf("dialect: csv backend error")
)

// Terminator tags the line-ending convention observed in a sample.
type Terminator int

const (
	// LF is a bare '\n'.
	LF Terminator = iota
	// CRLF is "\r\n".
	CRLF
	// CR is a bare '\r'.
	CR
)

// String implements fmt.Stringer.
func (t Terminator) String() string {
	switch t {
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "LF"
	}
}

// Bytes returns the literal terminator bytes.
func (t Terminator) Bytes() []byte {
	switch t {
	case CRLF:
		return []byte("\r\n")
	case CR:
		return []byte("\r")
	default:
		return []byte("\n")
	}
}

// Quoting tags how aggressively the winning dialect quotes fields.
type Quoting int

const (
	// Necessary means at least one cell required quoting to parse
	// correctly under the winning dialect.
	Necessary Quoting = iota
	// Always means every field is quoted regardless of content. This
	// detector never emits Always (see spec.md Open Questions).
	Always
	// Never means no cell in the sample required quoting.
	Never
)

// String implements fmt.Stringer.
func (q Quoting) String() string {
	switch q {
	case Always:
		return "Always"
	case Never:
		return "Never"
	default:
		return "Necessary"
	}
}

// Dialect fully configures a CSV parser for a given byte stream.
type Dialect struct {
	// Delimiter is the field separator byte. Always set.
	Delimiter byte
	// QuoteChar is the quoting byte, if any.
	QuoteChar byte
	// HasQuote reports whether QuoteChar is meaningful.
	HasQuote bool
	// Escape is the escape byte, if any.
	Escape byte
	// HasEscape reports whether Escape is meaningful.
	HasEscape bool
	// HasHeaders reports whether row 0 is a header row.
	HasHeaders bool
	// Terminator is the line-ending convention observed in the sample.
	Terminator Terminator
	// Quoting is the quoting policy inferred for the winning parse.
	Quoting Quoting
}

// candidate is a tentative (delimiter, quote?, escape?) triple under
// evaluation by the driver. It is never exposed to callers.
type candidate struct {
	delimiter byte
	quote     byte
	hasQuote  bool
	escape    byte
	hasEscape bool
}

// DataType is the closed tag set the classifier assigns to a cell.
type DataType int

const (
	// Text is the fallback type; every cell classifies to exactly one
	// DataType, with Text as the last resort.
	Text DataType = iota
	Empty
	Integer
	Float
	Boolean
	Date
	Time
	DateTime
	Email
	Url
	Phone
	Currency
	Percentage
)

// String implements fmt.Stringer, used in verbose diagnostics.
func (d DataType) String() string {
	switch d {
	case Empty:
		return "Empty"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case Email:
		return "Email"
	case Url:
		return "Url"
	case Phone:
		return "Phone"
	case Currency:
		return "Currency"
	case Percentage:
		return "Percentage"
	default:
		return "Text"
	}
}

// weight is the fixed per-type scoring weight from spec.md §4.4. Column
// contributions are w(dominant) * p_j * n_j.
func (d DataType) weight() float64 {
	switch d {
	case Integer, Float, Date, Time, DateTime, Currency, Percentage, Boolean:
		return 3.0
	case Email, Url, Phone:
		return 2.0
	case Empty:
		return 0.0
	default: // Text
		return 1.0
	}
}

// Row is an ordered sequence of cells, each a byte slice into the
// original sample. Rows need not have equal length.
type Row [][]byte

// Table is a finite ordered sequence of rows produced by the tolerant
// parser under one candidate dialect.
type Table struct {
	Rows []Row
	// Terminator is the first line-ending sequence observed while
	// parsing this table.
	Terminator Terminator
	// AnyQuoted reports whether any cell required quoting (contained
	// the delimiter, quote, or a terminator byte) under this dialect.
	AnyQuoted bool
}

// maxColumns returns the widest row width in the table (C in spec.md).
func (t *Table) maxColumns() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// TypedColumn is a histogram from DataType to count for one column,
// plus the column's dominant non-Empty type.
type TypedColumn struct {
	Counts    map[DataType]int
	Dominant  DataType
	NonEmpty  int
	HasData   bool
}

// typeWeightOrder breaks dominant-type ties deterministically; it is
// also the order argmax uses to break count ties in computeDominant.
var typeWeightOrder = []DataType{
	Integer, Float, Date, Time, DateTime, Currency, Percentage, Boolean,
	Email, Url, Phone, Text,
}

// computeDominant returns the arg-max non-Empty DataType in counts,
// breaking ties using the fixed weight order (spec.md §3).
func computeDominant(counts map[DataType]int) DataType {
	best := Text
	bestCount := -1
	for _, dt := range typeWeightOrder {
		c := counts[dt]
		if c > bestCount {
			bestCount = c
			best = dt
		}
	}
	return best
}

// ScoredCandidate pairs a Dialect with its parsed Table, per-column
// TypedColumn vector, and uniformity score.
type ScoredCandidate struct {
	Dialect Dialect
	Table   Table
	Columns []TypedColumn
	Score   float64
	// rawFreq is the candidate delimiter's raw byte frequency in the
	// sample, used only for tie-breaking (spec.md §4.4).
	rawFreq int
}
