package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/roach88/patrol/internal/grid"
)

// LoadError describes why a map file could not be turned into a grid.
type LoadError struct {
	Code    string // CLI error code (ErrCodeReadFailed, ErrCodeParseFailed, ...)
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadGrid reads a map file and parses it.
//
// The file may be UTF-8 (with or without BOM) or UTF-16 with a BOM.
// With requireGuard set, a map without a guard marker is rejected here
// rather than at simulation time.
func LoadGrid(path string, requireGuard bool) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "map file not found"}
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "failed to open map file", Err: err}
	}
	defer f.Close()

	m, err := ReadGrid(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "failed to read map file", Err: err}
	}

	if requireGuard {
		if _, err := m.FindGuard(); err != nil {
			return nil, &LoadError{Code: ErrCodeNoGuard, Path: path, Message: "map has no guard", Err: err}
		}
	}
	return m, nil
}

// ReadGrid decodes r and parses it into a grid.
func ReadGrid(r io.Reader) (*grid.Grid, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return nil, err
	}

	m, err := grid.Parse(strings.Split(string(data), "\n"))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "malformed map", Err: err}
	}
	return m, nil
}

// loadErrorCode maps a LoadGrid error onto a CLI error code.
func loadErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}
