// Package layout holds the geometry primitives shared by the brick resolver,
// the flow layout, and the sticky positioner.
//
// Coordinates are integer content units with Y growing downward. A zero
// [Rect] doubles as the "unset" sentinel. Types are re-exported through the
// root brick package for public consumption.
package layout
