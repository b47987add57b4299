// Package diagnostic provides structured errors and warnings for layout
// compilation.
//
// Key capabilities:
//   - Error codes for every layout rule
//   - Record and property paths locating each problem
//   - "Did you mean" suggestions for unresolved names
//   - A single CompileError aggregating everything found in one pass
package diagnostic
