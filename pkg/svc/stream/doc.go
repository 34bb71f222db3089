// Package stream prints a watch without the interactive view.
//
// SimplePrinter lists each snapshot as a NAME/AGE row. ExpandPrinter keeps a
// version history and prints the diff of every new version against the
// previous one, stopping at the first render failure.
package stream
