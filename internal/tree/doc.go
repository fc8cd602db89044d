// Package tree implements the nested key-value document model used for
// translation files. It parses JSON while preserving object key order,
// addresses leaves by dot-separated paths, and re-serializes with stable
// 2-space indentation.
package tree
