package dialect

import (
	"bytes"
	"math"
	"sort"
)

// delimiterAllowList is the fixed set of plausible delimiter bytes
// consulted before falling back to frequency analysis (spec.md §4.3).
var delimiterAllowList = []byte{',', ';', '\t', '|', ' '}

var quoteAllowList = []byte{'"', '\''}

const maxCandidates = 30

// generateCandidates enumerates plausible (delimiter, quote?, escape?)
// triples from the sample. The returned slice is bounded so scoring
// stays cheap. Every candidate's delimiter byte occurs in the sample,
// except when no allow-listed or low-variance byte is found at all: then
// the whole allow list is offered (see delimiterCandidates).
func generateCandidates(sample []byte) []candidate {
	delims := delimiterCandidates(sample)
	quotes := quoteCandidates(sample)

	var out []candidate
	for _, d := range delims {
		for _, q := range quotes {
			for _, hasEscape := range []bool{false, true} {
				c := candidate{delimiter: d}
				if q.has {
					c.quote = q.b
					c.hasQuote = true
				}
				if hasEscape {
					c.escape = '\\'
					c.hasEscape = true
				}
				if rejectTriple(c) {
					continue
				}
				out = append(out, c)
				if len(out) >= maxCandidates {
					return out
				}
			}
		}
	}
	return out
}

func rejectTriple(c candidate) bool {
	if c.hasQuote && c.delimiter == c.quote {
		return true
	}
	if c.hasEscape && c.delimiter == c.escape {
		return true
	}
	if c.hasQuote && c.hasEscape && c.quote == c.escape {
		return true
	}
	return false
}

type quoteCandidate struct {
	b   byte
	has bool
}

// quoteCandidates always offers the conventional double-quote
// candidate, even when no quote byte actually occurs in the sample:
// plain unquoted data is indistinguishable, scoring-wise, from data
// quoted with a character that never needed to fire, so the
// tie-break order (spec.md §4.4) is what actually picks '"' as the
// reported quote_char for unquoted samples. Other allow-listed quote
// bytes are only offered when observed, keeping the candidate count
// bounded.
func quoteCandidates(sample []byte) []quoteCandidate {
	out := []quoteCandidate{{has: false}, {b: '"', has: true}}
	for _, q := range quoteAllowList {
		if q == '"' {
			continue
		}
		if bytes.IndexByte(sample, q) >= 0 {
			out = append(out, quoteCandidate{b: q, has: true})
		}
	}
	return out
}

// delimiterCandidates is the union of allow-listed bytes present in
// the sample plus any byte whose per-line occurrence count has low
// variance across the first several lines (spec.md §4.3).
func delimiterCandidates(sample []byte) []byte {
	lines := splitLines(sample, 32)

	seen := make(map[byte]bool)
	var ordered []byte
	addOrdered := func(b byte) {
		if !seen[b] {
			seen[b] = true
			ordered = append(ordered, b)
		}
	}

	for _, d := range delimiterAllowList {
		if bytes.IndexByte(sample, d) >= 0 {
			addOrdered(d)
		}
	}

	for b := 0; b < 256; b++ {
		db := byte(b)
		if seen[db] || isTerminatorByte(db) {
			continue
		}
		if lowVarianceDelimiter(lines, db) {
			addOrdered(db)
		}
	}

	if len(ordered) == 0 {
		return delimiterAllowList
	}
	return ordered
}

func isTerminatorByte(b byte) bool {
	return b == '\n' || b == '\r'
}

// lowVarianceDelimiter reports whether byte b's per-line occurrence
// count has standard deviation below a threshold relative to the
// mean, across non-empty lines, and occurs at all.
func lowVarianceDelimiter(lines [][]byte, b byte) bool {
	var counts []float64
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		counts = append(counts, float64(bytes.Count(line, []byte{b})))
	}
	if len(counts) < 2 {
		return false
	}

	var sum float64
	for _, c := range counts {
		sum += c
	}
	mean := sum / float64(len(counts))
	if mean <= 0 {
		return false
	}

	var variance float64
	for _, c := range counts {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	stddev := math.Sqrt(variance)

	const threshold = 0.2
	return stddev/mean < threshold
}

func splitLines(sample []byte, limit int) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(sample) && len(lines) < limit; i++ {
		if sample[i] == '\n' {
			end := i
			if end > start && sample[end-1] == '\r' {
				end--
			}
			lines = append(lines, sample[start:i])
			_ = end
			start = i + 1
		}
	}
	if start < len(sample) && len(lines) < limit {
		lines = append(lines, sample[start:])
	}
	return lines
}

// delimiterFrequency returns the raw count of b in the sample, used
// only for the §4.4 tie-break.
func delimiterFrequency(sample []byte, b byte) int {
	return bytes.Count(sample, []byte{b})
}

// tieBreakOrder ranks delimiters for the fixed preference list in
// spec.md §4.4: ',' over ';' over '\t' over '|' over ' '.
func tieBreakOrder(b byte) int {
	order := []byte{',', ';', '\t', '|', ' '}
	for i, d := range order {
		if d == b {
			return i
		}
	}
	return len(order)
}

// sortCandidatesForTieBreak sorts the given scored candidates in
// place by the precedence rules of spec.md §4.4, highest score and
// best tie-break first.
func sortCandidatesForTieBreak(cands []ScoredCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.rawFreq != b.rawFreq {
			return a.rawFreq > b.rawFreq
		}
		if oa, ob := tieBreakOrder(a.Dialect.Delimiter), tieBreakOrder(b.Dialect.Delimiter); oa != ob {
			return oa < ob
		}
		if oa, ob := quoteTieBreakOrder(a.Dialect), quoteTieBreakOrder(b.Dialect); oa != ob {
			return oa < ob
		}
		return escapeTieBreakOrder(a.Dialect) < escapeTieBreakOrder(b.Dialect)
	})
}

// quoteTieBreakOrder ranks quote '"' over '\'' over none.
func quoteTieBreakOrder(d Dialect) int {
	if !d.HasQuote {
		return 2
	}
	if d.QuoteChar == '"' {
		return 0
	}
	return 1
}

// escapeTieBreakOrder ranks escape None over '\\'.
func escapeTieBreakOrder(d Dialect) int {
	if !d.HasEscape {
		return 0
	}
	return 1
}
