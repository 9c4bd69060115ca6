// Package harness runs patrol conformance scenarios.
//
// A scenario is a YAML file naming a map and the answers expected for it:
//
//	name: sample
//	description: canonical ten by ten map
//	grid: |
//	  ....#.....
//	  .........#
//	  ...
//	expect:
//	  outcome: exited
//	  visited: 41
//	  loops: 6
//
// Scenarios are decoded strictly, validated against the embedded CUE
// schema (schema.cue) and their grid parsed before anything runs. Run
// solves the map and compares the answers; Trace renders a plain-text
// summary with the painted path that golden files pin down.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
