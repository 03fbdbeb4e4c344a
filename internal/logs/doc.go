// Package logs tails the skelreview log file for the CLI.
//
// Tail reads the last N lines or everything past a byte offset and can wait
// for new lines, so `skelreview logs --follow` can poll while a review runs
// in another terminal. Lines can be narrowed to one review session.
package logs
