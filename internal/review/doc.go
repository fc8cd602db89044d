// Package review provides the terminal prompts used when change tracking
// escalates to an operator decision.
package review
