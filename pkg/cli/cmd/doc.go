// Package cmd provides the command-line interface for kwatch.
//
// The root command takes a resource and an optional object name, connects to
// the cluster described by the kubeconfig flags and runs one of three
// presentations until interrupted:
//   - tui: interactive version browser with side-by-side diffs
//   - expand: every version printed with its diff against the previous one
//   - simple: one NAME/AGE line per observed version
package cmd
