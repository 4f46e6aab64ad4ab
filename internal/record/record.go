package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Wire grammar.
const (
	itemPrefix      = "Item #"
	itemSeparator   = ": Generated at timestamp "
	ProcessedPrefix = "PROCESSED: "
)

// TimestampLayout renders the local wall-clock time of a record.
const TimestampLayout = "2006-01-02 15:04:05.999999999 -07:00"

// ErrMalformed is returned by the parsers for lines that do not follow the
// wire grammar.
var ErrMalformed = errors.New("malformed record")

// Record is one item emitted by the sender.
type Record struct {
	Sequence    uint32
	GeneratedAt time.Time
}

// New creates a record for sequence number seq generated at at.
func New(seq uint32, at time.Time) Record {
	return Record{Sequence: seq, GeneratedAt: at}
}

// String renders the record as a single line, without the line terminator.
func (r Record) String() string {
	return itemPrefix + strconv.FormatUint(uint64(r.Sequence), 10) +
		itemSeparator + r.GeneratedAt.Local().Format(TimestampLayout)
}

// Upper maps every character of line to its uppercase form using full
// Unicode case mapping, so multi-rune expansions such as ß -> SS apply.
func Upper(line string) string {
	// A Caser carries state and is not safe for concurrent use.
	return cases.Upper(language.Und).String(line)
}

// Process transforms one received line into its output form.
func Process(line string) string {
	return ProcessedPrefix + Upper(line)
}

// ParseItem splits a sender line into its sequence number and timestamp
// text. The timestamp is returned as-is; only its presence is checked.
func ParseItem(line string) (uint32, string, error) {
	rest, ok := strings.CutPrefix(line, itemPrefix)
	if !ok {
		return 0, "", fmt.Errorf("%w: missing %q prefix: %q", ErrMalformed, itemPrefix, line)
	}
	num, ts, ok := strings.Cut(rest, itemSeparator)
	if !ok {
		return 0, "", fmt.Errorf("%w: missing timestamp separator: %q", ErrMalformed, line)
	}
	seq, err := strconv.ParseUint(num, 10, 32)
	if err != nil || seq == 0 {
		return 0, "", fmt.Errorf("%w: bad sequence %q", ErrMalformed, num)
	}
	if ts == "" {
		return 0, "", fmt.Errorf("%w: empty timestamp: %q", ErrMalformed, line)
	}
	return uint32(seq), ts, nil
}

// ParseProcessed strips the receiver prefix from an output line.
func ParseProcessed(line string) (string, error) {
	rest, ok := strings.CutPrefix(line, ProcessedPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing %q prefix: %q", ErrMalformed, ProcessedPrefix, line)
	}
	return rest, nil
}
