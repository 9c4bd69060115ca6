// Package store provides SQLite-backed history of patrol solves.
//
// Each solve is one row in runs, keyed by a run ID and stamped with an
// insertion seq. The obstruction placements it found, loops and blocked
// anomalies alike, hang off it in obstructions.
//
// # Ordering
//
// All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY so that
// repeated reads return identical results.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Grid digests come from internal/digest, so runs over the same map can be
// found regardless of the file they were loaded from.
package store
