// Package diagnostic provides structured warnings and errors produced
// while resolving entity hierarchies.
//
// Key capabilities:
//   - Ignored access override reports
//   - Descriptor validation findings
//   - Merging per-hierarchy diagnostics in deterministic order
package diagnostic
