// Package state records build history.
//
// Each build produces a BuildRecord holding the configuration snapshot and the
// content hash it was emitted from, the targets it wrote and its outcome. The
// build service asks the store for the latest successful record per target to
// decide whether a build can be skipped.
package state
