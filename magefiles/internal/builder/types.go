package builder

import "errors"

// Config carries the paths the builder needs to produce and install
// the csv-qsniffer binary.
type Config struct {
	BinaryName string
	BinDir     string
	GOPATHBin  string
}

// BuildOptions captures the flags passed to `go build`.
type BuildOptions struct {
	TrimPath bool
	LDFlags  string
}

var ErrSourceBinaryNotExist = errors.New("source binary does not exist")
