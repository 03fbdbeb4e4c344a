// Package preflight provides readiness checks for the directories and
// external binaries a review session depends on.
//
// The CLI "skelreview status" command prints every result; "skelreview
// review" runs the same checks first and refuses to start when a required
// one fails, so a missing ffplay is reported before the terminal switches to
// raw mode.
package preflight
