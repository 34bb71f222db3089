// Package catalog discovers the API resources served by a cluster and
// resolves user-supplied resource names against them.
//
// Build walks the core group and every named group through the discovery
// API. Versions inside a group are ordered by Kubernetes version priority so
// that each group can offer one representative resource per kind. Resolve
// then matches a kind, plural or short name against those representatives.
package catalog
