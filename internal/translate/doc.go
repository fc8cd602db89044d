// Package translate defines the translation provider contract and its
// implementations. A provider receives a batch of keyed source strings and
// returns the same keys with translated values. Providers are resolved by
// name through an explicit factory map and classify rate-limit failures
// into a typed sentinel so callers can retry.
package translate
