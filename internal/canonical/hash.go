package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainStatement separates statement fingerprints from any other hash.
const DomainStatement = "sqlcomposer/statement/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a statement by its SQL, params and type tags.
// Two builds that would send the same bytes to the server share a
// fingerprint regardless of how they were composed.
func Fingerprint(sql string, params []any, types string) (string, error) {
	if params == nil {
		params = []any{}
	}
	data, err := Marshal(map[string]any{
		"sql":    sql,
		"params": params,
		"types":  types,
	})
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainStatement, data), nil
}
