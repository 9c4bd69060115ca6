package harness

import "github.com/roach88/patrol/internal/search"

// Result is the outcome of a scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass indicates every expectation matched.
	Pass bool `json:"pass"`

	// Errors contains one message per failed expectation.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Solution holds the computed answers.
	Solution *search.Solution `json:"-"`
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
