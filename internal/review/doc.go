// Package review runs the interactive clip review loop.
//
// A Session walks a working list of clips through three states. Loading
// parses the clip's skeleton file and opens its video; Playing renders one
// frame at a time with the skeleton overlay and polls the operator for a key;
// Stopped persists the exception ledger and ends the run. The key poll is the
// loop's only wait and therefore its clock.
//
// Operator keys are translated into a closed set of events by KeyMap. The
// video source, display, key source, ledger store and journal are consumed
// through small interfaces so sessions can be driven by fakes in tests.
package review
