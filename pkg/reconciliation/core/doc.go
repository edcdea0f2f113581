// Package core implements the three-way reconciliation engine: scanning,
// merging, rename/case-conflict/content-conflict detection, the per-path
// sync rule table, and the action executor. It is the brain described by
// spec.md §2 item 5 and specified in full in §4.5.
package core
