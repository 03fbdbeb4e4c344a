// Package media is the platform video and terminal layer used by review
// sessions.
//
// Decoder runs ffmpeg to turn a clip into packed RGB24 frames, the drawing
// helpers paint joint markers and bones into those frames, Presenter pipes
// them to an ffplay window, and KeyPoller reads operator keys from the
// controlling terminal in raw mode. All external binaries are configurable
// and looked up on PATH.
package media
