package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/testutil"
)

func writeRaw(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadGrid_Plain(t *testing.T) {
	m, err := LoadGrid(writeMap(t, testutil.SampleRows()), true)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleRows(), m.Rows())
}

func TestLoadGrid_Encodings(t *testing.T) {
	sample := strings.Join(testutil.SampleRows(), "\n") + "\n"

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(sample)
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String(sample)
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{"utf8 bom", "\xef\xbb\xbf" + sample},
		{"crlf", strings.ReplaceAll(sample, "\n", "\r\n")},
		{"utf16 le bom", utf16le},
		{"utf16 be bom", utf16be},
		{"no trailing newline", strings.TrimSuffix(sample, "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadGrid(writeRaw(t, tt.data), true)
			require.NoError(t, err)
			assert.Equal(t, testutil.SampleRows(), m.Rows())
		})
	}
}

func TestLoadGrid_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		guard    bool
		wantCode string
		wantText string
	}{
		{"empty", "", false, ErrCodeParseFailed, "EMPTY_GRID"},
		{"ragged", "...\n.^\n", false, ErrCodeParseFailed, "RAGGED_ROW"},
		{"bad symbol", ".^.\n.?.\n", false, ErrCodeParseFailed, "INVALID_SYMBOL"},
		{"two guards", "^.\n.<\n", false, ErrCodeParseFailed, "MULTIPLE_GUARDS"},
		{"no guard", "...\n...\n", true, ErrCodeNoGuard, "NO_GUARD_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGrid(writeRaw(t, tt.data), tt.guard)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, loadErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantText)
			assert.Contains(t, err.Error(), "map.txt")
		})
	}
}

func TestLoadGrid_NoGuardAllowedWithoutWalk(t *testing.T) {
	m, err := LoadGrid(writeRaw(t, "..#\n...\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Width())
}

func TestLoadGrid_Missing(t *testing.T) {
	_, err := LoadGrid(filepath.Join(t.TempDir(), "nope.txt"), true)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, loadErrorCode(err))
}

func TestReadGrid_UnwrapsGridError(t *testing.T) {
	_, err := ReadGrid(strings.NewReader("..\n."))
	require.Error(t, err)
	assert.Equal(t, grid.ErrCodeRaggedRow, grid.CodeOf(err))
}
