// Package syncer contains the synchronization engine: change detection
// against the lock snapshot, the tracking-mode resolution policy, the
// batched rate-limit-aware translation engine, and the tree reconciler
// that keeps per-locale files mirroring the source.
package syncer
