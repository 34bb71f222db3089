// Package diff turns two versions of a watched object into a rendered diff.
//
// A Pipeline strips fields that are noise for a human reviewer (the type
// envelope and, optionally, managed fields) from copies of both versions.
// A Dispatcher serialises the redacted pair to YAML and hands it to one of two
// renderers chosen at construction time:
//
//   - BackendLine writes a coloured unified diff to an output stream and
//     reports an exit code (0 equal, 1 different, anything else fatal).
//   - BackendStructural returns two independently scrollable panes for the
//     interactive view.
package diff
