// Package session implements the state machine of an interactive watch.
//
// A Controller starts in overview mode, listing every snapshot in arrival
// order. Entering a snapshot drills down into the history of its object;
// escaping returns to the overview with the same version selected. Every
// selection change recomputes the diff of the selected version against its
// predecessor in the version store.
package session
