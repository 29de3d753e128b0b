package dialect

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// patternSet holds the classifier's compiled regular expressions. It is
// expensive to build and purely read-only once constructed, so a
// single-assignment lazy initializer is the correct shape (see
// DESIGN.md). Tests that need isolation from the process-global table
// can construct a Classifier directly with newClassifierWithPatterns.
type patternSet struct {
	isoDate      *regexp.Regexp
	slashDate    *regexp.Regexp
	isoSlashDate *regexp.Regexp
	timeOfDay    *regexp.Regexp
	email        *regexp.Regexp
	url          *regexp.Regexp
	phone        *regexp.Regexp
}

var defaultPatterns = sync.OnceValue(compilePatterns)

func compilePatterns() *patternSet {
	return &patternSet{
		isoDate:      regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),
		slashDate:    regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`),
		isoSlashDate: regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`),
		timeOfDay:    regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?(?:\.\d+)?\s*(?:[AaPp][Mm])?\s*(?:Z|[+-]\d{2}:\d{2})?$`),
		email:        regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),
		url:          regexp.MustCompile(`^(?:https?|ftp)://\S+$`),
		phone:        regexp.MustCompile(`^\+?[\d\s\-()]+$`),
	}
}

// Classifier assigns a DataType tag to a cell's bytes. It is
// deterministic and stateless; the zero value is not usable, use
// NewClassifier.
type Classifier struct {
	p *patternSet
}

// NewClassifier returns a Classifier backed by the process-global
// compiled pattern table, compiling it on first use.
func NewClassifier() *Classifier {
	return &Classifier{p: defaultPatterns()}
}

// newClassifierWithPatterns is used by tests that want an isolated
// pattern set instead of the shared process-global one.
func newClassifierWithPatterns(p *patternSet) *Classifier {
	return &Classifier{p: p}
}

// Classify returns the DataType tag for cell. Cells are trimmed of
// ASCII whitespace before testing; the caller's original bytes are
// never mutated. Matching order is fixed by spec.md §4.1: the first
// type that matches wins.
func (c *Classifier) Classify(cell []byte) DataType {
	trimmed := trimASCIISpace(cell)
	if len(trimmed) == 0 {
		return Empty
	}
	s := normalizeIfNeeded(string(trimmed))

	if classifyBoolean(s) {
		return Boolean
	}
	if classifyInteger(s) {
		return Integer
	}
	if classifyFloat(s) {
		return Float
	}
	if classifyCurrency(s) {
		return Currency
	}
	if classifyPercentage(s) {
		return Percentage
	}
	if c.classifyDateTime(s) {
		return DateTime
	}
	if c.classifyDate(s) {
		return Date
	}
	if c.classifyTime(s) {
		return Time
	}
	if c.p.email.MatchString(s) {
		return Email
	}
	if c.p.url.MatchString(s) {
		return Url
	}
	if classifyPhone(c.p.phone, s) {
		return Phone
	}
	return Text
}

// defaultClassifier is the package-level singleton used by the
// package-level Classify function. The scorer and the header detector
// use the Classifier passed to them (a Sniffer's own).
var defaultClassifier = sync.OnceValue(NewClassifier)

// Classify is a package-level convenience wrapping the default
// Classifier.
func Classify(cell []byte) DataType {
	return defaultClassifier().Classify(cell)
}

// normalizeIfNeeded NFC-normalizes s only when it contains non-ASCII
// bytes, keeping the common ASCII path allocation-free.
func normalizeIfNeeded(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return norm.NFC.String(s)
		}
	}
	return s
}

func trimASCIISpace(b []byte) []byte {
	start := 0
	for start < len(b) && isASCIISpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

var booleanWords = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
	"t": true, "f": true, "y": true, "n": true,
}

// classifyBoolean matches the textual boolean forms only; a bare "0"
// or "1" is Integer instead (spec.md §4.1 step 2).
func classifyBoolean(s string) bool {
	low := strings.ToLower(s)
	if low == "0" || low == "1" {
		return false
	}
	return booleanWords[low]
}

func allASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// integerBody validates an unsigned integer body, accepting thousands
// separators and rejecting leading zeros on multi-digit numbers unless
// the body is exactly "0".
func integerBody(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, ",") {
		groups := strings.Split(s, ",")
		if len(groups) < 2 {
			return false
		}
		first := groups[0]
		if len(first) < 1 || len(first) > 3 || !allASCIIDigits(first) {
			return false
		}
		if len(first) > 1 && first[0] == '0' {
			return false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 || !allASCIIDigits(g) {
				return false
			}
		}
		return true
	}
	if !allASCIIDigits(s) {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	return true
}

func stripSign(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}
	return s
}

func classifyInteger(s string) bool {
	return integerBody(stripSign(s))
}

func classifyFloat(s string) bool {
	if isScientific(s) {
		return true
	}
	body := stripSign(s)
	dot := strings.IndexByte(body, '.')
	if dot < 0 {
		return false
	}
	intPart := body[:dot]
	fracPart := body[dot+1:]
	if !allASCIIDigits(fracPart) {
		return false
	}
	return integerBody(intPart)
}

// isScientific checks `[+-]?\d+(\.\d+)?[eE][+-]?\d+` without a regex,
// fusing the check into a direct byte scan per spec.md §4.1's
// implementer note.
func isScientific(s string) bool {
	body := stripSign(s)
	eIdx := -1
	for i := 0; i < len(body); i++ {
		if body[i] == 'e' || body[i] == 'E' {
			eIdx = i
			break
		}
	}
	if eIdx <= 0 {
		return false
	}
	mantissa := body[:eIdx]
	exponent := body[eIdx+1:]
	exponent = stripSign(exponent)
	if !allASCIIDigits(exponent) {
		return false
	}
	if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
		return allASCIIDigits(mantissa[:dot]) && allASCIIDigits(mantissa[dot+1:]) && mantissa[:dot] != "" && mantissa[dot+1:] != ""
	}
	return allASCIIDigits(mantissa)
}

var currencySymbols = []string{"$", "€", "£", "¥"}

func classifyCurrency(s string) bool {
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			rest := s[len(sym):]
			if classifyInteger(rest) || classifyFloat(rest) {
				return true
			}
		}
		if strings.HasSuffix(s, sym) {
			rest := s[:len(s)-len(sym)]
			if classifyInteger(rest) || classifyFloat(rest) {
				return true
			}
		}
	}
	return false
}

func classifyPercentage(s string) bool {
	if !strings.HasSuffix(s, "%") {
		return false
	}
	rest := s[:len(s)-1]
	return classifyInteger(rest) || classifyFloat(rest)
}

func (c *Classifier) classifyDate(s string) bool {
	if m := c.p.isoDate.FindStringSubmatch(s); m != nil {
		return validMonthDay(m[2], m[3])
	}
	if m := c.p.isoSlashDate.FindStringSubmatch(s); m != nil {
		return validMonthDay(m[2], m[3])
	}
	if m := c.p.slashDate.FindStringSubmatch(s); m != nil {
		a, b := m[1], m[2]
		return validMonthDay(a, b) || validMonthDay(b, a)
	}
	return false
}

func validMonthDay(monthStr, dayStr string) bool {
	month, err1 := strconv.Atoi(monthStr)
	day, err2 := strconv.Atoi(dayStr)
	if err1 != nil || err2 != nil {
		return false
	}
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func (c *Classifier) classifyTime(s string) bool {
	m := c.p.timeOfDay.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return false
	}
	if m[3] != "" {
		second, err := strconv.Atoi(m[3])
		if err != nil || second > 59 {
			return false
		}
	}
	return true
}

// classifyDateTime splits on the first space or 'T' separator and
// requires both halves to independently classify as Date and Time.
func (c *Classifier) classifyDateTime(s string) bool {
	sepIdx := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == 'T' {
			sepIdx = i
			break
		}
	}
	if sepIdx <= 0 || sepIdx == len(s)-1 {
		return false
	}
	return c.classifyDate(s[:sepIdx]) && c.classifyTime(s[sepIdx+1:])
}

func classifyPhone(re *regexp.Regexp, s string) bool {
	if !re.MatchString(s) {
		return false
	}
	digits := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits++
		}
	}
	return digits >= 7
}
