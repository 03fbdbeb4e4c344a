// Package main hosts the skelreview CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, then hands off to the
// internal packages: review runs the interactive overlay loop, clips and
// inspect report on the dataset, ledger edits the exception lists directly,
// and journal reads the SQLite history of past sessions.
package main
