// Package event carries engine notifications to interested observers.
//
// The bus is strictly synchronous: Publish runs every matching handler
// inline and returns when they are done. That matches the engine's
// single-threaded model, so observers always see the state that caused
// the event, with no queue to reorder or delay it. Events
// are small value types naming their topic; subscribers register for
// one topic or for everything.
package event
