// Package io groups input handling for kwatch.
//
// Subpackages:
//   - configmanager: flag and environment configuration loading
package io
