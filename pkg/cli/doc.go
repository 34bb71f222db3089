// Package cli holds the command wiring and terminal presentation of kwatch.
//
//   - cli/cmd: root command, logging setup and the watch pipeline
//   - cli/ui/errorhandler: error capture and exit code mapping
//   - cli/ui/watch: the interactive bubbletea view
package cli
