// Package element defines timeline elements and the interval arithmetic
// used to place them.
//
// An element occupies a half-open frame interval [Start, End) on exactly
// one track. Two elements on the same track overlap when their intervals
// share at least one frame; touching endpoints are not an overlap, so
// back-to-back cuts need no slack between them.
//
// Elements are immutable by convention. Operations that change an
// element clone it, adjust the copy, and replace it in the containing
// slice. Identity lives in the ID, which never changes across moves.
package element
