// Package skeleton parses Kinect v2 skeleton files into a frame and body
// indexed document.
//
// A skeleton file is line oriented and strictly positional: a frame count,
// then for every frame a body count, then for every body a ten field metadata
// line, a joint count and one twelve field line per joint. Parse enforces the
// nested counts and rejects any deviation with a FormatError that names the
// offending line. Parsing never returns a partially built Document.
//
// Documents are sized from the declared counts while parsing, so each
// (frame, body) slot holds exactly one Body. Lookups outside the declared
// range return ErrOutOfRange instead of panicking; the review overlay treats
// that as a render discrepancy and keeps playing.
//
// Write serializes a Document back into the same grammar, which keeps the
// structure (not the float formatting) stable across a round trip.
package skeleton
