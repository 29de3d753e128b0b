package sniffconfig

// Config holds the resolved runtime settings for a csv-qsniffer
// invocation: the row bounds passed to dialect.Sniffer and the output
// format used when none is given on the command line.
type Config struct {
	// MaxRows caps how many rows the tolerant parser produces per
	// candidate (spec.md §6). Default 1000.
	MaxRows int
	// MinRows is the minimum row count a candidate must reach to be
	// considered (spec.md §6). Default 2.
	MinRows int
	// DefaultFormat is the output format used when -f/--format is not
	// given on the command line: "human", "json", or "csv".
	DefaultFormat string
}
