package dialect

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ParserTestSuite struct {
	suite.Suite
}

func comma() candidate { return candidate{delimiter: ','} }

func commaQuoted() candidate {
	return candidate{delimiter: ',', quote: '"', hasQuote: true}
}

func (s *ParserTestSuite) TestSimpleCSV() {
	table := parse([]byte("a,b,c\n1,2,3"), comma(), 1000)
	s.Require().Len(table.Rows, 2)
	s.Equal([]byte("a"), table.Rows[0][0])
	s.Equal([]byte("3"), table.Rows[1][2])
}

func (s *ParserTestSuite) TestCRLFTerminator() {
	table := parse([]byte("a,b\r\n1,2\r\n3,4"), comma(), 1000)
	s.Equal(CRLF, table.Terminator)
	s.Require().Len(table.Rows, 3)
}

func (s *ParserTestSuite) TestCRTerminator() {
	table := parse([]byte("a,b\r1,2"), comma(), 1000)
	s.Equal(CR, table.Terminator)
}

func (s *ParserTestSuite) TestQuotedFieldWithEmbeddedDelimiter() {
	table := parse([]byte(`"a,b",c`+"\n"+`d,e`), commaQuoted(), 1000)
	s.Require().Len(table.Rows, 2)
	s.Equal([]byte("a,b"), table.Rows[0][0])
	s.True(table.AnyQuoted)
}

func (s *ParserTestSuite) TestDoubledQuoteIsLiteralQuote() {
	table := parse([]byte(`"say ""hi""",2`), commaQuoted(), 1000)
	s.Require().Len(table.Rows, 1)
	s.Equal([]byte(`say "hi"`), table.Rows[0][0])
}

func (s *ParserTestSuite) TestBackslashEscape() {
	cand := candidate{delimiter: ',', quote: '"', hasQuote: true, escape: '\\', hasEscape: true}
	table := parse([]byte(`"a\"b",c`), cand, 1000)
	s.Require().Len(table.Rows, 1)
	s.Equal([]byte(`a"b`), table.Rows[0][0])
}

func (s *ParserTestSuite) TestUnterminatedQuoteClosedAtEOF() {
	table := parse([]byte(`"unterminated,field`), commaQuoted(), 1000)
	s.Require().Len(table.Rows, 1)
}

func (s *ParserTestSuite) TestTrailingRowWithoutTerminatorIsKept() {
	table := parse([]byte("1,2\n3,4"), comma(), 1000)
	s.Require().Len(table.Rows, 2)
	s.Equal([]byte("4"), table.Rows[1][1])
}

func (s *ParserTestSuite) TestRowCountCapRespectsMaxRows() {
	table := parse([]byte("1\n2\n3\n4\n5"), comma(), 2)
	s.LessOrEqual(len(table.Rows), 3)
}

func (s *ParserTestSuite) TestEmptySampleProducesEmptyTable() {
	table := parse(nil, comma(), 1000)
	s.Empty(table.Rows)
}

func (s *ParserTestSuite) TestWrongDelimiterNeverErrors() {
	// Parsing tab-delimited data under a comma candidate must not
	// panic or error; it just produces one wide column per row.
	table := parse([]byte("a\tb\tc\n1\t2\t3"), comma(), 1000)
	s.Require().Len(table.Rows, 2)
	s.Len(table.Rows[0], 1)
}

func TestParserTestSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"a,b,c\n1,2,3",
		"a,b,c\r\n1,2,3",
		`"a,b",c` + "\n" + "d,e",
		`"say ""hi""",2`,
		"",
		",,,\n,,,",
		"\"unterminated",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	cands := []candidate{
		comma(),
		commaQuoted(),
		{delimiter: ',', quote: '"', hasQuote: true, escape: '\\', hasEscape: true},
		{delimiter: '\t'},
	}

	f.Fuzz(func(t *testing.T, s string) {
		for _, c := range cands {
			table := parse([]byte(s), c, 1000)
			_ = table // must not panic for any input/candidate combination
		}
	})
}
