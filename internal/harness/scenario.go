package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
)

// Scenario defines a conformance test scenario: one map and the answers
// expected for it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Grid is the map, one row per line.
	Grid string `yaml:"grid"`

	// Workers sets the obstruction search pool size. 0 or 1 is sequential.
	Workers int `yaml:"workers,omitempty"`

	// Detection selects the loop detection policy ("revisit" or "budget").
	Detection string `yaml:"detection,omitempty"`

	// Expect holds the expected answers. At least one must be set.
	Expect Expectation `yaml:"expect"`

	parsed *grid.Grid
}

// Expectation lists expected answers. Unset fields are not checked.
type Expectation struct {
	// Outcome is the unobstructed run's terminal state.
	Outcome string `yaml:"outcome,omitempty"`

	// Visited is the number of distinct cells of the unobstructed run.
	Visited *int `yaml:"visited,omitempty"`

	// Loops is the number of loop-inducing placements.
	Loops *int `yaml:"loops,omitempty"`

	// Obstructions is the exact list of loop placements as [x, y] pairs,
	// row-major.
	Obstructions [][]int `yaml:"obstructions,omitempty"`

	// Blocked is the exact list of placements that leave the guard unable
	// to move.
	Blocked [][]int `yaml:"blocked,omitempty"`
}

// NeedsSearch reports whether any expectation depends on the obstruction
// search.
func (e Expectation) NeedsSearch() bool {
	return e.Loops != nil || e.Obstructions != nil || e.Blocked != nil
}

func (e Expectation) empty() bool {
	return e.Outcome == "" && e.Visited == nil && !e.NeedsSearch()
}

// Map returns the parsed grid. Valid only on scenarios returned by
// LoadScenario or ParseScenario.
func (s *Scenario) Map() *grid.Grid {
	return s.parsed
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), fails the schema, or has a bad grid.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario parses scenario YAML. filename is used in error messages.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	// Strict decode catches typos like "expects:" before the schema runs.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(filename, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the schema cannot: the grid parses and at
// least one expectation is present.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Expect.empty() {
		return fmt.Errorf("expect must set at least one of outcome, visited, loops, obstructions, blocked")
	}

	if s.Expect.Outcome != "" {
		if _, err := patrol.ParseOutcome(s.Expect.Outcome); err != nil {
			return fmt.Errorf("expect.outcome: %w", err)
		}
	}

	if _, err := patrol.ParseDetection(s.Detection); err != nil {
		return fmt.Errorf("detection: %w", err)
	}

	for i, p := range s.Expect.Obstructions {
		if len(p) != 2 {
			return fmt.Errorf("expect.obstructions[%d]: want [x, y], got %v", i, p)
		}
	}
	for i, p := range s.Expect.Blocked {
		if len(p) != 2 {
			return fmt.Errorf("expect.blocked[%d]: want [x, y], got %v", i, p)
		}
	}

	m, err := grid.Parse(strings.Split(s.Grid, "\n"))
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if _, err := m.FindGuard(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	s.parsed = m

	return nil
}

func toPoints(pairs [][]int) []grid.Point {
	out := make([]grid.Point, len(pairs))
	for i, p := range pairs {
		out[i] = grid.Point{X: p[0], Y: p[1]}
	}
	return out
}
