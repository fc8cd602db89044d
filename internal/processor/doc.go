// Package processor contains the top-level run logic. It wires the
// configured translation provider, cache, lock file and syncers together,
// runs the tree and markdown synchronization and persists the updated
// snapshots. This package serves as the main coordinator between all other
// components.
package processor
