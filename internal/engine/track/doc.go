// Package track models timeline lanes: the closed role taxonomy that
// decides which elements may share a lane, the per-track boolean flags,
// and the copy-on-write slice operations (insertion, flag flips, trailing
// prune) that keep stored track arrays immutable.
//
// The track at index 0 is the main track. It always exists and hosts
// clip-role elements only.
package track
