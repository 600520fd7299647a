// Package flow is the generic layout pass that runs before sticky
// positioning. It stacks every item of a brick tree top-to-bottom in a
// single column and records each item's original frame along with the
// container frame of every section.
//
// The main entry point is [Calculate].
package flow
