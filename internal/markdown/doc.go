// Package markdown synchronizes per-locale markdown documents against the
// primary locale's directory. A whole document is the unit of change,
// identified by its content hash; fenced code blocks are shielded from the
// translation provider and restored byte-for-byte afterwards.
package markdown
