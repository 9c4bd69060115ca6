package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// validateSchema checks raw scenario YAML against #Scenario.
// filename is only used for error positions.
func validateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("extract YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build YAML: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
