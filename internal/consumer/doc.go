// Package consumer implements the receiving side of the demo.
//
// A Consumer reads its input one line at a time until end of stream. Every
// line is counted, logged, uppercased, written back as "PROCESSED: <line>"
// and followed by a fixed pause. Lines end at "\n"; a trailing "\r" is
// dropped and a last line without terminator is still processed. Input that
// is not valid UTF-8 is a read error.
package consumer
