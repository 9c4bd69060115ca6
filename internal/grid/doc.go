// Package grid implements the patrol map: a rectangular surface of
// single-character cells addressed by (x, y), where x is the column and y
// the row.
//
// A Grid holds static content only (open cells, obstacles and the guard's
// starting marker). Visitation state produced by a simulation is kept out
// of the grid, in the patrol package's Trail overlay. Painting a trail
// back onto a grid is a diagnostic step that always works on a clone.
//
// Grids are values with owned storage. Clone returns a deep copy, so an
// obstruction trial can mutate its own copy without touching the source.
package grid
