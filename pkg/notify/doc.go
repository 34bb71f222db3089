// Package notify writes short, symbol-prefixed status lines for CLI users.
//
// Errors are red (✗), warnings yellow (⚠), information blue (ℹ), successes
// green (✔) and activities uncoloured (►). Colours are dropped automatically
// when the destination is not a terminal.
package notify
