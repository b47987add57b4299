// Package layout compiles declared records into resolved layouts: the
// position, size and occurrence bounds of every field and segment.
//
// Compilation pipeline:
//  1. Build an arena of nodes from the declared property tree, applying
//     occurrence defaults and computing field and segment sizes.
//  2. Validate the tree (occursRef targets, repeating segments, until,
//     fixed-length widths, mixed explicit and computed positions).
//  3. Assign positions. Without explicit positions, components are laid out
//     in order; at most one component may be of indeterminate size, and
//     every component after it is located from the end of the record.
//  4. Rewrite the components after the indeterminate one to negative,
//     end-relative positions and set its Until.
//
// All problems found are returned together as a *diagnostic.CompileError.
// A compiled Record is never modified afterwards and may be shared.
package layout
