// Package patrol simulates a guard walking a grid.
//
// The walk is driven by a single pure movement rule, Step: the guard moves
// forward, and when the cell ahead is an obstacle it turns clockwise until
// a way forward opens. Leaving the map ends the walk.
//
// Simulator runs the rule to a terminal Outcome:
//
//	Running ──Step──▶ Running
//	   │
//	   ├── guard leaves the map        ──▶ Exited
//	   ├── (cell, facing) seen before  ──▶ Cycle
//	   └── no facing leads anywhere    ──▶ Blocked
//
// Visitation is recorded in a Trail, an overlay of per-cell heading bitmasks
// kept apart from the content grid. The content grid is never written to
// during a run, which is what lets one grid serve many obstruction trials.
//
// A (cell, facing) pair fully determines every later step, so seeing one
// twice proves the guard is in a loop. The alternative step-budget policy
// declares a loop once the guard has moved more times than there are
// distinct (cell, facing) states.
package patrol
