package dialect

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SnifferTestSuite struct {
	suite.Suite

	sniffer *Sniffer
}

func (s *SnifferTestSuite) SetupTest() {
	s.sniffer = NewSniffer()
}

// TestScenario1CommaHeader covers spec.md §8 scenario 1.
func (s *SnifferTestSuite) TestScenario1CommaHeader() {
	d, err := s.sniffer.SniffString("name,age,city\nJohn,25,NYC\nJane,30,LA")
	s.Require().NoError(err)
	s.Equal(byte(','), d.Delimiter)
	s.True(d.HasQuote)
	s.Equal(byte('"'), d.QuoteChar)
	s.False(d.HasEscape)
	s.True(d.HasHeaders)
	s.Equal(LF, d.Terminator)
}

// TestScenario2Semicolon covers spec.md §8 scenario 2.
func (s *SnifferTestSuite) TestScenario2Semicolon() {
	d, err := s.sniffer.SniffString("name;age;city\nJohn;25;NYC\nJane;30;LA")
	s.Require().NoError(err)
	s.Equal(byte(';'), d.Delimiter)
	s.True(d.HasQuote)
	s.True(d.HasHeaders)
}

// TestScenario3TabCRLF covers spec.md §8 scenario 3.
func (s *SnifferTestSuite) TestScenario3TabCRLF() {
	d, err := s.sniffer.SniffString("a\tb\tc\r\n1\t2\t3\r\n4\t5\t6")
	s.Require().NoError(err)
	s.Equal(byte('\t'), d.Delimiter)
	s.Equal(CRLF, d.Terminator)
	s.True(d.HasHeaders)
}

// TestScenario4EmbeddedComma covers spec.md §8 scenario 4.
func (s *SnifferTestSuite) TestScenario4EmbeddedComma() {
	input := `"John Doe","A person with, comma",25.50` + "\n" +
		`"Jane Smith","Another ""quoted"" person",30.75`
	d, err := s.sniffer.SniffString(input)
	s.Require().NoError(err)
	s.Equal(byte(','), d.Delimiter)
	s.Equal(byte('"'), d.QuoteChar)
	s.False(d.HasHeaders)
}

// TestScenario5ShortSecondRow covers spec.md §8 scenario 5: the
// sample produces a valid (low-scoring) dialect under the default
// min_rows=2 rather than failing InvalidInput, since the second row
// following the lone terminator still counts toward the row total
// (see DESIGN.md).
func (s *SnifferTestSuite) TestScenario5ShortSecondRow() {
	_, err := s.sniffer.SniffString("1,2\n3")
	s.Require().NoError(err)
}

// TestScenario6Pipe covers spec.md §8 scenario 6.
func (s *SnifferTestSuite) TestScenario6Pipe() {
	d, err := s.sniffer.SniffString("a|b|c\n1|2|3\n4|5|6\n7|8|9")
	s.Require().NoError(err)
	s.Equal(byte('|'), d.Delimiter)
	s.True(d.HasHeaders)
}

func (s *SnifferTestSuite) TestEmptyInputFailsInvalidInput() {
	_, err := s.sniffer.SniffString("")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidInput))
}

func (s *SnifferTestSuite) TestWhitespaceOnlyInputFailsInvalidInput() {
	_, err := s.sniffer.SniffString("   \n   ")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidInput))
}

func (s *SnifferTestSuite) TestSingleColumnScoresLowOrFails() {
	_, err := s.sniffer.SniffString("apple\nbanana\ncherry\ndate")
	if err != nil {
		s.True(errors.Is(err, ErrNoValidDialect))
	}
}

func (s *SnifferTestSuite) TestDelimiterAppearsInSample() {
	d, err := s.sniffer.SniffString("a,b,c\n1,2,3\n4,5,6")
	s.Require().NoError(err)
	s.Contains("a,b,c\n1,2,3\n4,5,6", string(d.Delimiter))
}

func (s *SnifferTestSuite) TestDeterministicAcrossCalls() {
	input := "a,b,c\n1,2,3\n4,5,6"
	d1, err1 := s.sniffer.SniffString(input)
	d2, err2 := s.sniffer.SniffString(input)
	s.Require().NoError(err1)
	s.Require().NoError(err2)
	s.Equal(d1, d2)
}

func (s *SnifferTestSuite) TestSniffReader() {
	r := strings.NewReader("a,b,c\n1,2,3\n4,5,6")
	d, err := s.sniffer.Sniff(r)
	s.Require().NoError(err)
	s.Equal(byte(','), d.Delimiter)
}

func (s *SnifferTestSuite) TestSniffFileMissingPath() {
	_, err := s.sniffer.SniffFile("/nonexistent/path/for/csv-qsniffer-tests.csv")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrIO))
}

func TestSnifferTestSuite(t *testing.T) {
	suite.Run(t, new(SnifferTestSuite))
}

func TestSniffStringPackageConvenience(t *testing.T) {
	d, err := SniffString("a,b,c\n1,2,3\n4,5,6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Delimiter != ',' {
		t.Fatalf("expected comma delimiter, got %q", d.Delimiter)
	}
}

func TestApproxRowCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"noTerminator", "abc", 1},
		{"oneTerminatorNoTrailing", "a\nb", 2},
		{"oneTerminatorTrailingTerminator", "a\n", 1},
		{"twoTerminators", "a\nb\nc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := approxRowCount([]byte(tt.input))
			if got != tt.want {
				t.Errorf("approxRowCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func FuzzSniffBytes(f *testing.F) {
	seeds := []string{
		"name,age,city\nJohn,25,NYC\nJane,30,LA",
		"name;age;city\nJohn;25;NYC\nJane;30;LA",
		"a\tb\tc\r\n1\t2\t3\r\n4\t5\t6",
		`"John Doe","A person with, comma",25.50` + "\n" + `"Jane Smith","Another ""quoted"" person",30.75`,
		"1,2\n3",
		"a|b|c\n1|2|3\n4|5|6\n7|8|9",
		"",
		"   ",
		"a\nb\nc",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		d, err := SniffString(s)
		if err != nil {
			return
		}
		if d.Delimiter == d.QuoteChar && d.HasQuote {
			t.Fatalf("delimiter and quote_char must be pairwise distinct, got %q", d.Delimiter)
		}
		if d.HasEscape && d.Escape == d.Delimiter {
			t.Fatalf("delimiter and escape must be pairwise distinct, got %q", d.Delimiter)
		}
		if d.HasEscape && d.HasQuote && d.Escape == d.QuoteChar {
			t.Fatalf("quote_char and escape must be pairwise distinct, got %q", d.QuoteChar)
		}
	})
}
