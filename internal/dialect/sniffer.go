package dialect

import (
	"fmt"
	"io"
	"os"
)

const (
	// defaultMaxRows is the default MaxRows value (spec.md §6).
	defaultMaxRows = 1000
	// defaultMinRows is the default MinRows value (spec.md §6).
	defaultMinRows = 2

	assumedMeanLineLen = 80
	minSampleCap       = 64 * 1024
	maxSampleCap       = 4 * 1024 * 1024
)

// Sniffer detects the CSV dialect of a byte stream using the Table
// Uniformity Method. A Sniffer call is a pure function of the sample
// bytes, MaxRows, and MinRows; no shared mutable state exists across
// calls (spec.md §5).
type Sniffer struct {
	// MaxRows caps how many rows the tolerant parser will produce per
	// candidate. Default 1000.
	MaxRows int
	// MinRows is the minimum row count a candidate (and the sample
	// itself) must have to be considered. Default 2.
	MinRows int

	classifier *Classifier
}

// NewSniffer returns a Sniffer configured with the documented
// defaults (MaxRows=1000, MinRows=2).
func NewSniffer() *Sniffer {
	return &Sniffer{
		MaxRows:    defaultMaxRows,
		MinRows:    defaultMinRows,
		classifier: NewClassifier(),
	}
}

func (s *Sniffer) ensureDefaults() {
	if s.MaxRows <= 0 {
		s.MaxRows = defaultMaxRows
	}
	if s.MinRows <= 0 {
		s.MinRows = defaultMinRows
	}
	if s.classifier == nil {
		s.classifier = NewClassifier()
	}
}

// sampleCap returns the byte-reading cap for Sniff(reader), derived
// from MaxRows times an assumed mean line length, clamped to
// [minSampleCap, maxSampleCap] (spec.md §4.6).
func (s *Sniffer) sampleCap() int {
	n := s.MaxRows * assumedMeanLineLen
	if n < minSampleCap {
		return minSampleCap
	}
	if n > maxSampleCap {
		return maxSampleCap
	}
	return n
}

// Sniff reads up to the internal byte cap from r and detects its
// dialect. It blocks on r until the cap is reached or end-of-input;
// no cancellation is exposed (spec.md §5) — callers wanting
// cancellation must interpose a cancellable reader.
func (s *Sniffer) Sniff(r io.Reader) (Dialect, error) {
	s.ensureDefaults()

	limited := io.LimitReader(r, int64(s.sampleCap()))
	buf, err := io.ReadAll(limited)
	if err != nil {
		return Dialect{}, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return s.sniffBytes(buf)
}

// SniffString wraps text's bytes and delegates to Sniff's detection
// logic without going through an io.Reader.
func (s *Sniffer) SniffString(text string) (Dialect, error) {
	s.ensureDefaults()
	return s.sniffBytes([]byte(text))
}

// SniffFile opens path and detects its dialect, a convenience wrapper
// around Sniff for the CLI's FILE argument.
func (s *Sniffer) SniffFile(path string) (Dialect, error) {
	f, err := os.Open(path) //nolint:gosec // path is an explicit CLI argument
	if err != nil {
		return Dialect{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() { _ = f.Close() }()
	return s.Sniff(f)
}

// sniffBytes implements the algorithm of spec.md §4.6.
func (s *Sniffer) sniffBytes(sample []byte) (Dialect, error) {
	if len(trimASCIISpace(sample)) == 0 {
		return Dialect{}, fmt.Errorf("%w: sample is empty or whitespace-only", ErrInvalidInput)
	}
	if approxRowCount(sample) < s.MinRows {
		return Dialect{}, fmt.Errorf("%w: sample has too few rows for min_rows=%d", ErrInvalidInput, s.MinRows)
	}

	cands := generateCandidates(sample)

	var scored []ScoredCandidate
	for _, c := range cands {
		table := parse(sample, c, s.MaxRows)
		if len(table.Rows) < s.MinRows {
			continue
		}
		score, columns := scoreTable(&table, s.classifier, s.MinRows)
		scored = append(scored, ScoredCandidate{
			Dialect: dialectFromCandidate(c),
			Table:   table,
			Columns: columns,
			Score:   score,
			rawFreq: delimiterFrequency(sample, c.delimiter),
		})
	}

	if len(scored) == 0 {
		return Dialect{}, fmt.Errorf("%w: no candidate produced at least min_rows=%d rows", ErrNoValidDialect, s.MinRows)
	}

	sortCandidatesForTieBreak(scored)
	winner := scored[0]
	if winner.Score <= 0 {
		return Dialect{}, fmt.Errorf("%w: every candidate scored zero", ErrNoValidDialect)
	}

	d := winner.Dialect
	d.HasHeaders = detectHeader(&winner.Table, s.classifier)
	d.Terminator = winner.Table.Terminator
	if winner.Table.AnyQuoted {
		d.Quoting = Necessary
	} else {
		d.Quoting = Never
	}

	return d, nil
}

func dialectFromCandidate(c candidate) Dialect {
	return Dialect{
		Delimiter: c.delimiter,
		QuoteChar: c.quote,
		HasQuote:  c.hasQuote,
		Escape:    c.escape,
		HasEscape: c.hasEscape,
	}
}

// approxRowCount estimates how many rows the tolerant parser will
// produce from sample, counting one row per terminator plus one more
// if content follows the last terminator (or the whole sample is one
// unterminated line). This is the pre-flight check of spec.md §4.6
// step 1; a strict terminator-only count would reject inputs whose
// final row lacks a trailing terminator, which the worked examples
// in spec.md §8 require to succeed (see DESIGN.md).
func approxRowCount(sample []byte) int {
	if len(sample) == 0 {
		return 0
	}
	count := 0
	lastEnd := 0
	for i := 0; i < len(sample); {
		if term, size := matchTerminator(sample, i); term >= 0 {
			count++
			i += size
			lastEnd = i
			continue
		}
		i++
	}
	if lastEnd < len(sample) {
		count++
	}
	return count
}

// Sniff is a package-level convenience using default Sniffer settings.
func Sniff(r io.Reader) (Dialect, error) {
	return NewSniffer().Sniff(r)
}

// SniffString is a package-level convenience using default Sniffer
// settings.
func SniffString(text string) (Dialect, error) {
	return NewSniffer().SniffString(text)
}
