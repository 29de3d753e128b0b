// Package output renders a detected dialect.Dialect in the three
// formats csv-qsniffer supports: human, json, and csv (spec.md §6).
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cli-tools/csv-qsniffer/internal/dialect"
)

// WriteHuman writes the human-readable rendering of d to w:
//
//	Delimiter: '<c>' (<byte>)
//	Quote character: '<c>' or None
//	Escape character: '<c>' or None
//	Has headers: true|false
func WriteHuman(w io.Writer, d dialect.Dialect) error {
	quote := "None"
	if d.HasQuote {
		quote = fmt.Sprintf("'%c'", d.QuoteChar)
	}
	escape := "None"
	if d.HasEscape {
		escape = fmt.Sprintf("'%c'", d.Escape)
	}

	_, err := fmt.Fprintf(w, "Delimiter: '%c' (%d)\nQuote character: %s\nEscape character: %s\nHas headers: %t\n",
		d.Delimiter, d.Delimiter, quote, escape, d.HasHeaders)
	return err
}

// jsonDialect mirrors the wire shape spec.md §6 requires for json
// output: every byte field accompanied by its numeric twin, optional
// fields nullable.
type jsonDialect struct {
	Delimiter     string  `json:"delimiter"`
	DelimiterByte byte    `json:"delimiter_byte"`
	QuoteChar     *string `json:"quote_char"`
	QuoteCharByte *byte   `json:"quote_char_byte"`
	Escape        *string `json:"escape"`
	EscapeByte    *byte   `json:"escape_byte"`
	HasHeaders    bool    `json:"has_headers"`
	Terminator    string  `json:"terminator"`
	Quoting       string  `json:"quoting"`
}

// WriteJSON writes the JSON rendering of d to w.
func WriteJSON(w io.Writer, d dialect.Dialect) error {
	jd := jsonDialect{
		Delimiter:     string(d.Delimiter),
		DelimiterByte: d.Delimiter,
		HasHeaders:    d.HasHeaders,
		Terminator:    d.Terminator.String(),
		Quoting:       d.Quoting.String(),
	}
	if d.HasQuote {
		s := string(d.QuoteChar)
		jd.QuoteChar = &s
		b := d.QuoteChar
		jd.QuoteCharByte = &b
	}
	if d.HasEscape {
		s := string(d.Escape)
		jd.Escape = &s
		b := d.Escape
		jd.EscapeByte = &b
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jd)
}

// WriteCSV writes the single-line csv rendering of d to w:
// <delimiter>,<quote_char>,<has_headers>,<escape>, with empty fields
// standing in for None.
func WriteCSV(w io.Writer, d dialect.Dialect) error {
	quote := ""
	if d.HasQuote {
		quote = string(d.QuoteChar)
	}
	escape := ""
	if d.HasEscape {
		escape = string(d.Escape)
	}

	_, err := fmt.Fprintf(w, "%c,%s,%t,%s\n", d.Delimiter, quote, d.HasHeaders, escape)
	return err
}

// Write dispatches to the renderer named by format ("human", "json",
// or "csv"). An unrecognized format is a programmer/usage error.
func Write(w io.Writer, format string, d dialect.Dialect) error {
	switch format {
	case "human":
		return WriteHuman(w, d)
	case "json":
		return WriteJSON(w, d)
	case "csv":
		return WriteCSV(w, d)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
