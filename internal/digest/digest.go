// Package digest computes content-addressed identities for patrol maps.
//
// A digest is SHA-256 over a domain prefix, a 0x00 separator and the
// canonical JSON of the value. The domain carries a version suffix so the
// encoding can change without colliding with older digests.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/patrol/internal/grid"
)

// DomainGrid prefixes grid digests.
const DomainGrid = "patrol/grid/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Grid returns the digest of m's dimensions and content.
// Two grids have the same digest iff they render identically.
func Grid(m *grid.Grid) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"width":  m.Width(),
		"height": m.Height(),
		"rows":   m.Rows(),
	})
	if err != nil {
		return "", fmt.Errorf("grid digest: %w", err)
	}
	return hashWithDomain(DomainGrid, canonical), nil
}
