// Package svc provides the service layer of kwatch.
//
// Subpackages:
//   - diff: redaction and rendering of changes between two object versions
//   - session: navigation state of the interactive view
//   - store: observed versions in arrival order
//   - stream: line-oriented presentations for non-interactive modes
//   - watch: ingestion from the cluster and optional export to disk
package svc
