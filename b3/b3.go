package b3

import (
	"encoding/hex"
	"fmt"
	"io"

	"lukechampine.com/blake3"
)

const fieldSeparator = 0x1f

func Blake3HashFromReader(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("calculating blake3 hash from reader: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Blake3HashFromFields hashes fields in order. Every field is terminated by
// a unit separator, so ("ab", "c") and ("a", "bc") hash differently.
func Blake3HashFromFields(fields ...string) string {
	h := blake3.New(32, nil)
	for _, f := range fields {
		// hash.Hash writes never fail
		_, _ = io.WriteString(h, f)
		_, _ = h.Write([]byte{fieldSeparator})
	}

	return hex.EncodeToString(h.Sum(nil))
}
