// Package producer implements the sending side of the demo.
//
// A Producer writes a bounded, strictly increasing sequence of records to its
// output stream, one line each, flushed as soon as it is written. Progress
// goes to the diagnostic logger, never to the output stream.
//
// Run loop, for i in 1..Count:
//  1. build the record with the current local time
//  2. write it and flush
//  3. log "Producer: sent item"
//  4. pause for Interval
//
// Any write error ends the run at once.
package producer
