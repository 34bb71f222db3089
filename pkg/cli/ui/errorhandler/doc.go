// Package errorhandler turns command failures into user-facing messages and
// process exit codes.
package errorhandler
