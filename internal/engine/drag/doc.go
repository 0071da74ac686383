// Package drag models a drag gesture as explicit preview state.
//
// A Session accumulates pointer updates without committing anything;
// the renderer reads its ghost geometry to draw the preview. Releasing
// produces the parameters for exactly one commit call, and cancelling
// produces none. History never sees the intermediate positions.
package drag
