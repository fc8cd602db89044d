// Package memory provides a persistent translation memory backed by
// SQLite. Repeated source strings are answered from the cache instead of
// the translation provider, which keeps re-syncs cheap. The cache is an
// optimization only; failures degrade to uncached operation.
package memory
