// Package lockfile persists the per-project sync snapshot: the last
// synchronized source value for every unit plus the set of frozen units,
// one section per content kind in a single shared JSON file.
package lockfile
